package config

type BackendCfg struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type PollCfg struct {
	IntervalMs      int `yaml:"interval_ms"`
	ErrorIntervalMs int `yaml:"error_interval_ms"` // delay after a failed poll
}

type UICfg struct {
	NotificationTTLMs int `yaml:"notification_ttl_ms"`
}

type LoggingCfg struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // stdout|stderr|path
}

type MockCfg struct {
	Listen       string `yaml:"listen"`
	CheckDelayMs int    `yaml:"check_delay_ms"` // per-number delay of the stand-in batch worker
}

type Config struct {
	Version int        `yaml:"version"`
	Backend BackendCfg `yaml:"backend"`
	Poll    PollCfg    `yaml:"poll"`
	UI      UICfg      `yaml:"ui"`
	Logging LoggingCfg `yaml:"logging"`
	Mock    MockCfg    `yaml:"mock"`
}
