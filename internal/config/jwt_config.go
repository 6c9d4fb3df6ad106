package config

import "github.com/spf13/viper"

// JwtConfig holds the HMAC secret used to verify bearer tokens on submit.
type JwtConfig struct {
	Secret string `mapstructure:"secret"`
}

type NatsConfig struct {
	Url            string `mapstructure:"url"`
	CaseSubject    string `mapstructure:"case_subject"`
	SummarySubject string `mapstructure:"summary_subject"`
}

type HttpConfig struct {
	Port int `mapstructure:"port"`
}

func setTransportDefaults(v *viper.Viper) {
	v.SetDefault("jwt.secret", "")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.case_subject", "judge.case.finished")
	v.SetDefault("nats.summary_subject", "judge.submission.finished")
	v.SetDefault("http.port", 8082)
}
