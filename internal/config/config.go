package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server  Server  `mapstructure:"server"`
	Logging Logging `mapstructure:"logging"`
	Bot     Bot     `mapstructure:"bot"`
}

// Server holds the HTTP listener and session cookie settings.
type Server struct {
	Addr         string `mapstructure:"addr"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieMaxAge int    `mapstructure:"cookie_max_age"`
}

// Logging selects the zap level and encoder.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Bot controls the simulated thinking delays of the bot scheduler.
type Bot struct {
	// FastPass is used when a bot just drew a playable card and kept its
	// turn, so the players do not sit through a second full pause.
	FastPass time.Duration `mapstructure:"fast_pass"`
	// Thinking delay: base + per_card * hand size + uniform jitter,
	// capped at max.
	ThinkBase    time.Duration `mapstructure:"think_base"`
	ThinkPerCard time.Duration `mapstructure:"think_per_card"`
	ThinkJitter  time.Duration `mapstructure:"think_jitter"`
	ThinkMax     time.Duration `mapstructure:"think_max"`
	// WinResetDelay is the pause between a win and the reset to lobby,
	// matching the client's win animation.
	WinResetDelay time.Duration `mapstructure:"win_reset_delay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.cookie_name", "mono_session")
	v.SetDefault("server.cookie_max_age", 60*60*24*7)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("bot.fast_pass", 300*time.Millisecond)
	v.SetDefault("bot.think_base", 700*time.Millisecond)
	v.SetDefault("bot.think_per_card", 40*time.Millisecond)
	v.SetDefault("bot.think_jitter", 600*time.Millisecond)
	v.SetDefault("bot.think_max", 2500*time.Millisecond)
	v.SetDefault("bot.win_reset_delay", time.Second)
}

// Load reads configuration from the optional file at path, with MONO_*
// environment variables overriding everything.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MONO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
