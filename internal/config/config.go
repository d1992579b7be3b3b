package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Rollover     Rollover     `mapstructure:",squash"`
	ExchangeRate ExchangeRate `mapstructure:",squash"`
	Notification Notification `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Rollover configura a vigia da fronteira de dia e o rollover diário
type Rollover struct {
	CheckIntervalSeconds int  `mapstructure:"rollover_check_interval_seconds"`
	Enabled              bool `mapstructure:"rollover_enabled"`
	NotifyEnabled        bool `mapstructure:"rollover_notify_enabled"`
}

// ExchangeRate configura o cache de cotação USD→BRL
type ExchangeRate struct {
	ProviderURL            string  `mapstructure:"exchange_rate_provider_url"`
	TTLSeconds             int     `mapstructure:"exchange_rate_ttl_seconds"`
	RefreshIntervalSeconds int     `mapstructure:"exchange_rate_refresh_interval_seconds"`
	FallbackRate           float64 `mapstructure:"exchange_rate_fallback"`
	RefreshEnabled         bool    `mapstructure:"exchange_rate_refresh_enabled"`
}

// Notification configura o canal opcional de aviso de rollover
type Notification struct {
	WebhookURL string `mapstructure:"rollover_webhook_url"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	// Defaults do rollover diário
	viper.SetDefault("ROLLOVER_CHECK_INTERVAL_SECONDS", 30) // Verificação da fronteira a cada 30 segundos
	viper.SetDefault("ROLLOVER_ENABLED", true)              // Habilitar o rollover automático
	viper.SetDefault("ROLLOVER_NOTIFY_ENABLED", true)       // Habilitar a notificação de rollover
	viper.SetDefault("ROLLOVER_WEBHOOK_URL", "")            // Sem webhook por padrão

	// Defaults do cache de cotação
	viper.SetDefault("EXCHANGE_RATE_PROVIDER_URL", "https://economia.awesomeapi.com.br")
	viper.SetDefault("EXCHANGE_RATE_TTL_SECONDS", 300)              // Cotação fresca por 5 minutos
	viper.SetDefault("EXCHANGE_RATE_REFRESH_INTERVAL_SECONDS", 300) // Refresh em background a cada 5 minutos
	viper.SetDefault("EXCHANGE_RATE_FALLBACK", 5.0)                 // Cotação constante quando nunca houve busca bem-sucedida
	viper.SetDefault("EXCHANGE_RATE_REFRESH_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
