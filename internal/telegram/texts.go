package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// UI texts; the bot speaks Ukrainian.
const (
	btnToday              = "Дізнатись погоду"
	btnAddCity            = "Додати місто"
	btnUseLocation        = "Використати геолокацію"
	btnNotifications      = "Сповіщення"
	btnSetNotification    = "Налаштувати щоденне сповіщення"
	btnRemoveNotification = "Видалити час сповіщення"
	btnBackToMainMenu     = "Повернутись в головне меню"

	textAskCity        = "Введіть назву міста:"
	textBadTime        = "❌ Невірний формат часу. Спробуйте ще раз, використовуючи формат HH:mm (наприклад, 08:30)."
	textNoCitiesYet    = "❌ У вас ще немає міст. Спочатку додайте місто."
	textPickCity       = "Оберіть місто:"
	textPickNotifyCity = "Оберіть місто для налаштування сповіщення:"
	textPickRemoveCity = "Оберіть місто для видалення часу сповіщення:"
	textNotifyMenu     = "Меню налаштування сповіщень:"
	textBackToMain     = "Ви повернулись в головне меню."
	textAskLocation    = "Надішліть свою геолокацію, щоб дізнатися погоду на сьогодні."
	textGeoFailed      = "❌ Не вдалося визначити місто за геолокацією."
	textFetchFailed    = "❌ Не вдалося отримати погодні дані для цього міста."
	textNoNotification = "❌ Немає налаштованого часу сповіщення для цього міста."

	textAbout = `🤖 Про цього бота:
Я погодний бот, який надає актуальну інформацію про погоду в різних містах.
Я можу допомогти дізнатись погоду на сьогодні або на наступні кілька днів.

💬 Ви можете додавати міста, використовувати свою геолокацію для визначення погоди та налаштовувати щоденні сповіщення.`

	textHelp = `📘 Інструкція:
Ось кілька команд, які ви можете використовувати:

- /start — Почати роботу з ботом
- /about — Дізнатись більше про бота
- /help — Отримати допомогу щодо використання бота
- /addcity — Додати нове місто для прогнозу погоди
- /setnotification — Налаштувати щоденне сповіщення для міста`
)

// Callback data prefixes and suffixes. City names are embedded verbatim.
const (
	cbCityPrefix         = "city_"
	cbTodaySuffix        = "_today"
	cbWeekSuffix         = "_seven"
	cbRemovePrefix       = "remove_"
	cbSharePrefix        = "share_"
	cbSetNotifyPrefix    = "set_notification_"
	cbRemoveNotifyPrefix = "remove_notification_"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnToday)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnAddCity)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnUseLocation)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnNotifications)),
	)
}

func notificationMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSetNotification),
			tgbotapi.NewKeyboardButton(btnRemoveNotification),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBackToMainMenu),
		),
	)
}

// cityListKeyboard builds one inline row per subscribed city: forecast for
// today, for the week, remove, share.
func cityListKeyboard(cities []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(city, cbCityPrefix+city+cbTodaySuffix),
			tgbotapi.NewInlineKeyboardButtonData("На тиждень", cbCityPrefix+city+cbWeekSuffix),
			tgbotapi.NewInlineKeyboardButtonData("Видалити", cbRemovePrefix+city),
			tgbotapi.NewInlineKeyboardButtonData("Поділитись прогнозом", cbSharePrefix+city),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// cityPickKeyboard builds one button per city with the given callback
// prefix; used by the set- and remove-notification flows.
func cityPickKeyboard(cities []string, prefix string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(city, prefix+city),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
