package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/makskhv21/bot-weather/internal/domain"
	"github.com/makskhv21/bot-weather/internal/weather"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendWithKeyboard(chatID int64, text string, kb interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, _ = r.bot.Send(msg)
}

func (r *Router) answerCallback(id string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, ""))
	return err
}

// --- Core commands ---

func (r *Router) handleStart(chatID int64, from *tgbotapi.User) {
	name := ""
	if from != nil {
		name = from.FirstName
	}
	greeting := fmt.Sprintf("Привіт, %s! Я погодний бот. Чим можу допомогти?", name)
	r.sendWithKeyboard(chatID, greeting, mainMenuKeyboard())
}

// askCity arms the add-city flow: the next text message is a city name.
func (r *Router) askCity(chatID int64) {
	r.sendText(chatID, textAskCity)
	r.setSession(chatID, domain.Session{Stage: domain.StageAwaitingCity})
}

// handleTodayMenu shows the per-city inline keyboard, or a hint when the
// user has no cities yet.
func (r *Router) handleTodayMenu(chatID int64) {
	cities := r.registry.Cities(chatID)
	if len(cities) == 0 {
		r.sendText(chatID, textNoCitiesYet)
		return
	}
	r.sendWithKeyboard(chatID, textPickCity, cityListKeyboard(cities))
}

func (r *Router) handleSetNotificationMenu(chatID int64) {
	cities := r.registry.Cities(chatID)
	if len(cities) == 0 {
		r.sendText(chatID, textNoCitiesYet)
		return
	}
	r.sendWithKeyboard(chatID, textPickNotifyCity, cityPickKeyboard(cities, cbSetNotifyPrefix))
}

func (r *Router) handleRemoveNotificationMenu(chatID int64) {
	cities := r.registry.Cities(chatID)
	if len(cities) == 0 {
		r.sendText(chatID, textNoCitiesYet)
		return
	}
	r.sendWithKeyboard(chatID, textPickRemoveCity, cityPickKeyboard(cities, cbRemoveNotifyPrefix))
}

// --- Conversation stages ---

// handleFreeForm dispatches a plain text message based on the chat's
// conversation stage. Idle chats ignore free-form text.
func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	s := r.session(chatID)
	switch s.Stage {
	case domain.StageAwaitingCity:
		r.handleAddCity(ctx, chatID, text)
	case domain.StageAwaitingNotificationTime:
		r.handleNotificationTime(chatID, s.City, text)
	case domain.StageIdle:
		// Not part of any flow.
	}
}

// handleAddCity validates the city against the provider before adding it;
// an unknown city re-prompts and keeps the stage armed.
func (r *Router) handleAddCity(ctx context.Context, chatID int64, city string) {
	if _, err := r.gateway.Forecast(ctx, city); err != nil {
		r.sendText(chatID, fmt.Sprintf("Місто %q не знайдено. Спробуйте ще раз.", city))
		return
	}
	r.registry.AddCity(chatID, city)
	r.clearSession(chatID)
	r.sendWithKeyboard(chatID, fmt.Sprintf("Місто %q додано!", city), mainMenuKeyboard())
}

// handleNotificationTime validates the HH:mm input; on bad input the stage
// stays armed so the user can retry.
func (r *Router) handleNotificationTime(chatID int64, city, input string) {
	t, err := domain.ParseTimeOfDay(input)
	if err != nil {
		r.sendText(chatID, textBadTime)
		return
	}
	r.registry.SetNotification(chatID, city, t)
	r.clearSession(chatID)
	r.sendWithKeyboard(chatID,
		fmt.Sprintf("Час сповіщення для міста %q встановлено на %s.", city, t),
		notificationMenuKeyboard())
}

// --- Callbacks ---

func (r *Router) handleForecast(ctx context.Context, chatID int64, city string, sel weather.Selection) {
	series, err := r.gateway.Forecast(ctx, city)
	if err != nil {
		r.log.Warn("forecast lookup failed", zap.String("city", city), zap.Error(err))
		r.sendText(chatID, textFetchFailed)
		return
	}
	text := weather.FormatCityWeatherMessage(city, series, sel)
	r.sendWithKeyboard(chatID, text, cityListKeyboard(r.registry.Cities(chatID)))
}

func (r *Router) handleShare(ctx context.Context, chatID int64, city string) {
	series, err := r.gateway.Forecast(ctx, city)
	if err != nil {
		r.log.Warn("forecast lookup failed", zap.String("city", city), zap.Error(err))
		r.sendText(chatID, textFetchFailed)
		return
	}
	message := weather.FormatCityWeatherMessage(city, series, weather.SelectionToday)
	link := weather.GenerateShareLink(city, series, weather.SelectionToday)
	text := fmt.Sprintf("Ось ваш прогноз для міста %s:\n%s\n\nПоділіться ним за посиланням: %s", city, message, link)
	r.sendWithKeyboard(chatID, text, cityListKeyboard(r.registry.Cities(chatID)))
}

func (r *Router) handleRemoveCity(chatID int64, city string) {
	r.registry.RemoveCity(chatID, city)
	r.sendWithKeyboard(chatID,
		fmt.Sprintf("🗑 Місто %q видалено зі списку.", city),
		cityListKeyboard(r.registry.Cities(chatID)))
}

// handlePickNotificationCity remembers the chosen city and asks for a time.
func (r *Router) handlePickNotificationCity(chatID int64, city string) {
	r.setSession(chatID, domain.Session{Stage: domain.StageAwaitingNotificationTime, City: city})
	r.sendText(chatID, fmt.Sprintf("Вибрано місто: %s. Тепер введіть час сповіщення у форматі HH:mm (наприклад, 08:30):", city))
}

func (r *Router) handleRemoveNotification(chatID int64, city string) {
	if !r.registry.RemoveNotification(chatID, city) {
		r.sendText(chatID, textNoNotification)
		return
	}
	r.sendWithKeyboard(chatID,
		fmt.Sprintf("Час сповіщення для міста %q видалено.", city),
		notificationMenuKeyboard())
}

// handleLocation resolves the user's location to a city and replies with
// today's forecast.
func (r *Router) handleLocation(ctx context.Context, chatID int64, lat, lon float64) {
	city, err := r.gateway.CityByCoordinates(ctx, lat, lon)
	if err != nil {
		r.log.Warn("reverse geocode failed", zap.Error(err))
		r.sendText(chatID, textGeoFailed)
		return
	}
	series, err := r.gateway.Forecast(ctx, city)
	if err != nil {
		r.log.Warn("forecast lookup failed", zap.String("city", city), zap.Error(err))
		r.sendText(chatID, textGeoFailed)
		return
	}
	text := weather.FormatCityWeatherMessage(city, series, weather.SelectionToday)
	r.sendWithKeyboard(chatID, text, mainMenuKeyboard())
}
