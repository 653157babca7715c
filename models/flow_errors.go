package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Ошибки движка согласования. Переход либо применяется целиком, либо
// завершается одной из этих ошибок; обработчики API переводят их в ответ
// пользователю без стектрейса.

// ConfigurationError — невалидная конфигурация (SLA, тип задания, маршрут).
// Фатальна для операции: задание с такой конфигурацией не создается.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError — действие недопустимо из текущего статуса
type InvalidTransitionError struct {
	Status JobStatus
	Action JobAction
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("действие %q недопустимо в статусе %q", e.Action, e.Status.GetDesc())
}

func NewInvalidTransitionError(status JobStatus, action JobAction) error {
	return &InvalidTransitionError{Status: status, Action: action}
}

// UnauthorizedActorError — актор не входит в круг допущенных к действию
type UnauthorizedActorError struct {
	ActorID string
	Action  JobAction
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("действие %q недоступно данному пользователю", e.Action)
}

func NewUnauthorizedActorError(actorID string, action JobAction) error {
	return &UnauthorizedActorError{ActorID: actorID, Action: action}
}

// ConcurrentModificationError — запись изменилась с момента чтения,
// вызывающая сторона должна перечитать и повторить
type ConcurrentModificationError struct {
	GivenVersion int
}

func (e *ConcurrentModificationError) Error() string {
	return "запись была изменена другим пользователем, повторите операцию"
}

func NewConcurrentModificationError(givenVersion int) error {
	return &ConcurrentModificationError{GivenVersion: givenVersion}
}

// ValidationError — ошибка входных данных формы (пустая причина и т.п.)
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsConfigurationError(err error) bool {
	target := &ConfigurationError{}
	return errors.As(err, &target)
}

func IsInvalidTransitionError(err error) bool {
	target := &InvalidTransitionError{}
	return errors.As(err, &target)
}

func IsUnauthorizedActorError(err error) bool {
	target := &UnauthorizedActorError{}
	return errors.As(err, &target)
}

func IsConcurrentModificationError(err error) bool {
	target := &ConcurrentModificationError{}
	return errors.As(err, &target)
}

func IsValidationError(err error) bool {
	target := &ValidationError{}
	return errors.As(err, &target)
}
