package locale

import "strings"

// Language набор строк интерфейса для одного языка.
type Language struct {
	Code        string
	Name        string
	Welcome     string
	Callback    string
	Error       string
	StartPrompt string
}

// Codes порядок языков в клавиатуре выбора.
var Codes = []string{"english", "azerbaijani", "russian"}

// DefaultCode язык по умолчанию для новых пользователей.
const DefaultCode = "english"

var languages = map[string]Language{
	"english": {
		Code:        "english",
		Name:        "🇬🇧 English",
		Welcome:     "Dear user: @{username}!\nWelcome to KapitalPro.\nKapitalPro integrates the power of artificial intelligence and machine learning into every stage of our value chain. AI technology is the core of our strategic growth engine and processes. Invest in cryptocurrencies using AI strategies and achieve stable returns.\n\nChoose your preferred language:",
		Callback:    "Language changed to English",
		Error:       "Error. Please try again!",
		StartPrompt: "Please use /start to begin.",
	},
	"azerbaijani": {
		Code:        "azerbaijani",
		Name:        "🇦🇿 Azerbaijani",
		Welcome:     "Hörmətli istifadəçi: @{username}!\nKapitalPro-ya xoş gəlmisiniz.\nKapitalPro süni intellekt və maşın öyrənməsinin gücünü dəyər zəncirimizin hər mərhələsinə inteqrasiya edir. AI texnologiyası strategiyamızın böyümə mühərriki və proseslərinin əsasını təşkil edir. AI strategiyalarından istifadə edərək kriptovalyutalara investisiya edin və sabit gəlir əldə edin.\n\nDil seçin:",
		Callback:    "Dil Azərbaycan dilinə dəyişdirildi",
		Error:       "Xəta. Zəhmət olmasa yenidən cəhd edin!",
		StartPrompt: "Zəhmət olmasa başlamaq üçün /start istifadə edin.",
	},
	"russian": {
		Code:        "russian",
		Name:        "🇷🇺 Russian",
		Welcome:     "Уважаемый пользователь: @{username}!\nДобро пожаловать в KapitalPro.\nKapitalPro интегрирует мощь искусственного интеллекта и машинного обучения на каждом этапе нашей цепочки создания стоимости. Технология ИИ является ядром нашего стратегического двигателя роста и процессов. Инвестируйте в криптовалюты, используя стратегии ИИ, и получайте стабильную прибыль.\n\nВыберите язык:",
		Callback:    "Язык изменен на русский",
		Error:       "Ошибка. Пожалуйста, попробуйте снова!",
		StartPrompt: "Пожалуйста, используйте /start для начала.",
	},
}

// Кнопки, не зависящие от языка.
const (
	ButtonLaunchApp = "🚀 Launch App"
	ButtonContact   = "💬 Technical Support"
)

// Get возвращает языковой набор по коду; неизвестный код дает язык по умолчанию.
func Get(code string) Language {
	if lang, ok := languages[code]; ok {
		return lang
	}
	return languages[DefaultCode]
}

// Known сообщает, поддерживается ли код языка.
func Known(code string) bool {
	_, ok := languages[code]
	return ok
}

// WelcomeMessage подставляет имя пользователя в приветственный текст.
func (l Language) WelcomeMessage(username string) string {
	return strings.ReplaceAll(l.Welcome, "{username}", username)
}
