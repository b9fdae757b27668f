package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/makskhv21/bot-weather/internal/domain"
	"github.com/makskhv21/bot-weather/internal/store"
	"github.com/makskhv21/bot-weather/internal/weather"
)

// WeatherGateway is the weather lookup surface the router needs.
// weather.Client implements it.
type WeatherGateway interface {
	Forecast(ctx context.Context, city string) (weather.SampleSeries, error)
	CityByCoordinates(ctx context.Context, lat, lon float64) (string, error)
}

// Router wires Telegram updates to handlers and holds the per-chat
// conversation state.
type Router struct {
	bot      *tgbotapi.BotAPI
	log      *zap.Logger
	registry store.Registry
	gateway  WeatherGateway
	sessions map[int64]domain.Session
	mu       sync.RWMutex
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, registry store.Registry, gateway WeatherGateway) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		registry: registry,
		gateway:  gateway,
		sessions: make(map[int64]domain.Session),
	}
}

// setSession replaces the conversation state for a chat.
func (r *Router) setSession(chatID int64, s domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[chatID] = s
}

// session returns the conversation state for a chat; the zero value is idle.
func (r *Router) session(chatID int64) domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[chatID]
}

// clearSession resets a chat back to idle.
func (r *Router) clearSession(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID

		if msg.Location != nil {
			r.handleLocation(ctx, chatID, msg.Location.Latitude, msg.Location.Longitude)
			return
		}

		text := strings.TrimSpace(msg.Text)
		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(chatID, msg.From)
		case strings.HasPrefix(text, "/addcity"):
			r.askCity(chatID)
		case strings.HasPrefix(text, "/setnotification"):
			r.handleSetNotificationMenu(chatID)
		case strings.HasPrefix(text, "/about"):
			r.sendText(chatID, textAbout)
		case strings.HasPrefix(text, "/help"):
			r.sendText(chatID, textHelp)

		// Reply-keyboard buttons arrive as plain text.
		case text == btnToday:
			r.handleTodayMenu(chatID)
		case text == btnAddCity:
			r.askCity(chatID)
		case text == btnUseLocation:
			r.sendText(chatID, textAskLocation)
		case text == btnNotifications:
			r.sendWithKeyboard(chatID, textNotifyMenu, notificationMenuKeyboard())
		case text == btnSetNotification:
			r.handleSetNotificationMenu(chatID)
		case text == btnRemoveNotification:
			r.handleRemoveNotificationMenu(chatID)
		case text == btnBackToMainMenu:
			r.sendWithKeyboard(chatID, textBackToMain, mainMenuKeyboard())

		default:
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		chatID := cb.Message.Chat.ID
		data := cb.Data
		_ = r.answerCallback(cb.ID)

		// Longer prefixes first: "remove_notification_" also matches "remove_".
		switch {
		case strings.HasPrefix(data, cbSetNotifyPrefix):
			r.handlePickNotificationCity(chatID, strings.TrimPrefix(data, cbSetNotifyPrefix))
		case strings.HasPrefix(data, cbRemoveNotifyPrefix):
			r.handleRemoveNotification(chatID, strings.TrimPrefix(data, cbRemoveNotifyPrefix))
		case strings.HasPrefix(data, cbCityPrefix) && strings.HasSuffix(data, cbTodaySuffix):
			city := strings.TrimSuffix(strings.TrimPrefix(data, cbCityPrefix), cbTodaySuffix)
			r.handleForecast(ctx, chatID, city, weather.SelectionToday)
		case strings.HasPrefix(data, cbCityPrefix) && strings.HasSuffix(data, cbWeekSuffix):
			city := strings.TrimSuffix(strings.TrimPrefix(data, cbCityPrefix), cbWeekSuffix)
			r.handleForecast(ctx, chatID, city, weather.SelectionWeek)
		case strings.HasPrefix(data, cbSharePrefix):
			r.handleShare(ctx, chatID, strings.TrimPrefix(data, cbSharePrefix))
		case strings.HasPrefix(data, cbRemovePrefix):
			r.handleRemoveCity(chatID, strings.TrimPrefix(data, cbRemovePrefix))
		default:
			// Unknown callback — ignore silently.
		}
		return
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
