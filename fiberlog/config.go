package fiberlog

import "github.com/sirupsen/logrus"

// Config задает логгер и набор тегов запроса, попадающих в поля записи
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault — теги по умолчанию для api портала
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagIP,
		RequestID,
	},
}
