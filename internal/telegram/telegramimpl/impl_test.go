package telegramimpl

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageToDefaultChannel(t *testing.T) {
	var sent []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"alerts","username":"alerts_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "@ops", r.Form.Get("chat_id"))
			assert.Equal(t, "MarkdownV2", r.Form.Get("parse_mode"))
			sent = append(sent, r.Form.Get("text"))
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-100,"type":"channel"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Telegram.Token = "token"
	cfg.Telegram.Channel = "ops"
	cfg.Telegram.ApiEndpoint = srv.URL + "/bot%s/%s"

	tg := New(Opts{Config: cfg, Logger: logger.New(logger.Opts{Env: "test", Output: io.Discard})})
	require.NotNil(t, tg.TgBot)

	tg.SendMessageToDefaultChannel("LinkedIn token refresh failed")

	assert.Equal(t, []string{"LinkedIn token refresh failed"}, sent)
}

func TestSendMessageToDefaultChannel_NotConfigured(t *testing.T) {
	tg := New(Opts{Config: &config.Config{}, Logger: logger.New(logger.Opts{Env: "test", Output: io.Discard})})

	assert.Nil(t, tg.TgBot)
	tg.SendMessageToDefaultChannel("dropped")
}
