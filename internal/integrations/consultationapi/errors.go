package consultationapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport возвращается при сетевой ошибке или таймауте
	ErrTransport = errors.New("consultationapi client: transport error")

	// ErrInvalidResponse возвращается при некорректном ответе внешнего API
	ErrInvalidResponse = errors.New("consultationapi client: invalid response")

	// ErrRemote возвращается, когда внешний API отклонил запрос прикладным кодом != 200
	ErrRemote = errors.New("consultationapi client: remote rejection")
)

// RemoteError несёт прикладной код и сообщение сервера
// Сообщение показывается пользователю как есть
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("consultationapi client: remote rejection (code=%d): %s", e.Code, e.Message)
}

// Unwrap позволяет матчить RemoteError через errors.Is(err, ErrRemote)
func (e *RemoteError) Unwrap() error {
	return ErrRemote
}
