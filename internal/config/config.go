package config

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/techcorp/payroll-engine/internal/payroll"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Company CompanyConfig `mapstructure:"company"`
	Payroll PayrollConfig `mapstructure:"payroll"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig holds the document directories.
type StorageConfig struct {
	TimesheetDir string `mapstructure:"timesheet_dir"`
	PayslipDir   string `mapstructure:"payslip_dir"`
}

// CompanyConfig holds the letterhead fields printed on payslips.
type CompanyConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
}

// TaxBracket is one configured progressive tax bracket. A limit of zero (or
// omitted) marks the final, unbounded bracket.
type TaxBracket struct {
	Limit float64 `mapstructure:"limit"`
	Rate  float64 `mapstructure:"rate"`
}

// PayrollConfig holds the pay policy.
type PayrollConfig struct {
	Allowance          float64      `mapstructure:"allowance"`
	FullMonthBonus     float64      `mapstructure:"full_month_bonus"`
	FullMonthHours     float64      `mapstructure:"full_month_hours"`
	HolidayPremiumRate float64      `mapstructure:"holiday_premium_rate"`
	SocialSecurityRate float64      `mapstructure:"social_security_rate"`
	MedicareRate       float64      `mapstructure:"medicare_rate"`
	InsuranceFlat      float64      `mapstructure:"insurance_flat"`
	ProvidentFundRate  float64      `mapstructure:"provident_fund_rate"`
	TaxBrackets        []TaxBracket `mapstructure:"tax_brackets"`
}

// WorkerConfig holds batch-processing configuration.
type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from the given YAML file with environment
// overrides. A .env file in the working directory is applied first when
// present.
func Load(configPath string) (*Config, error) {
	_ = gotenv.Load()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration, used by CLI tools when no
// config file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			TimesheetDir: "timesheets/excel",
			PayslipDir:   "salary_slips",
		},
		Company: CompanyConfig{
			Name:    "TechCorp Industries Inc.",
			Address: "123 Business Avenue, San Francisco, CA 94102",
		},
		Worker: WorkerConfig{Concurrency: 4},
		Logger: LoggerConfig{Level: "info", OutputPath: "stdout", Format: "console"},
	}
}

func setDefaults() {
	d := Default()

	viper.SetDefault("server.host", d.Server.Host)
	viper.SetDefault("server.port", d.Server.Port)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	viper.SetDefault("storage.timesheet_dir", d.Storage.TimesheetDir)
	viper.SetDefault("storage.payslip_dir", d.Storage.PayslipDir)

	viper.SetDefault("company.name", d.Company.Name)
	viper.SetDefault("company.address", d.Company.Address)

	viper.SetDefault("payroll.allowance", payroll.DefaultAllowance)
	viper.SetDefault("payroll.full_month_bonus", payroll.DefaultFullMonthBonus)
	viper.SetDefault("payroll.full_month_hours", payroll.DefaultFullMonthHours)
	viper.SetDefault("payroll.holiday_premium_rate", payroll.DefaultHolidayPremiumRate)
	viper.SetDefault("payroll.social_security_rate", payroll.DefaultSocialSecurityRate)
	viper.SetDefault("payroll.medicare_rate", payroll.DefaultMedicareRate)
	viper.SetDefault("payroll.insurance_flat", payroll.DefaultInsuranceFlat)
	viper.SetDefault("payroll.provident_fund_rate", payroll.DefaultProvidentFundRate)

	viper.SetDefault("worker.concurrency", d.Worker.Concurrency)

	viper.SetDefault("logger.level", d.Logger.Level)
	viper.SetDefault("logger.output_path", d.Logger.OutputPath)
	viper.SetDefault("logger.format", "json")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Storage.TimesheetDir == "" {
		return fmt.Errorf("storage.timesheet_dir is required")
	}
	if c.Storage.PayslipDir == "" {
		return fmt.Errorf("storage.payslip_dir is required")
	}
	if c.Company.Name == "" {
		return fmt.Errorf("company.name is required")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("worker.concurrency must be at least 1")
	}
	return nil
}

// CalculatorConfig converts the configured pay policy into the calculator's
// form. An empty bracket list falls back to the default table; a bracket
// with limit zero becomes the unbounded top bracket.
func (c *PayrollConfig) CalculatorConfig() payroll.Config {
	cfg := payroll.Config{
		Allowance:          c.Allowance,
		FullMonthBonus:     c.FullMonthBonus,
		FullMonthHours:     c.FullMonthHours,
		HolidayPremiumRate: c.HolidayPremiumRate,
		SocialSecurityRate: c.SocialSecurityRate,
		MedicareRate:       c.MedicareRate,
		InsuranceFlat:      c.InsuranceFlat,
		ProvidentFundRate:  c.ProvidentFundRate,
	}

	if len(c.TaxBrackets) == 0 {
		cfg.Brackets = payroll.DefaultBrackets()
		return cfg
	}

	for _, b := range c.TaxBrackets {
		limit := b.Limit
		if limit <= 0 {
			limit = math.Inf(1)
		}
		cfg.Brackets = append(cfg.Brackets, payroll.Bracket{Limit: limit, Rate: b.Rate})
	}
	return cfg
}
