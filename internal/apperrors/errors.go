// Package apperrors : классификация ошибок портала.
//
// Каждая конкретная ошибка оборачивает один из видов (ErrValidation, ErrAuth, ...),
// поэтому errors.Is работает и для вида, и для конкретной ошибки:
//
//	errors.Is(apperrors.ErrFileTooLarge, apperrors.ErrValidation) // true
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Виды ошибок
var (
	// ErrValidation : локальная ошибка проверки, запрос в сеть не отправлялся
	ErrValidation = errors.New("ошибка валидации")
	// ErrAuth : нет токена, токен просрочен или отклонен API
	ErrAuth = errors.New("ошибка авторизации")
	// ErrConflict : конфликт данных, например email уже зарегистрирован
	ErrConflict = errors.New("конфликт")
	// ErrNetwork : сетевая ошибка или ответ API без разбираемого тела
	ErrNetwork = errors.New("ошибка соединения")
	// ErrRejected : API отклонило запрос и вернуло сообщение
	ErrRejected = errors.New("запрос отклонен")
	// ErrInProgress : такой же запрос уже выполняется
	ErrInProgress = errors.New("запрос уже выполняется")
)

// Ошибки валидации
var (
	ErrInvalidFileType     = fmt.Errorf("%w: разрешены только файлы PDF, DOC и DOCX", ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: файл больше 25MB", ErrValidation)
	ErrEmptyFile           = fmt.Errorf("%w: пустой файл", ErrValidation)
	ErrMissingField        = fmt.Errorf("%w: обязательное поле не заполнено", ErrValidation)
	ErrPasswordMismatch    = fmt.Errorf("%w: пароли не совпадают", ErrValidation)
	ErrWeakPassword        = fmt.Errorf("%w: пароль должен содержать не менее 6 символов", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: неверный email", ErrValidation)
	ErrInvalidCode         = fmt.Errorf("%w: код должен состоять ровно из 6 цифр", ErrValidation)
	ErrTermsNotAccepted    = fmt.Errorf("%w: необходимо принять условия использования", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: недопустимая роль", ErrValidation)
	ErrInvalidDocumentType = fmt.Errorf("%w: недопустимый тип документа", ErrValidation)
	ErrQueryTooShort       = fmt.Errorf("%w: запрос поиска слишком короткий", ErrValidation)
)

// Ошибки авторизации
var (
	ErrUnauthenticated  = fmt.Errorf("%w: пользователь не авторизован", ErrAuth)
	ErrMalformedToken   = fmt.Errorf("%w: невалидный токен", ErrAuth)
	ErrEmailNotVerified = fmt.Errorf("%w: email не подтвержден", ErrAuth)
	ErrForbidden        = fmt.Errorf("%w: доступ запрещён", ErrAuth)
)

// ErrStorageWrite : запись в объектное хранилище не удалась
var ErrStorageWrite = fmt.Errorf("%w: не удалось записать файл в хранилище", ErrNetwork)

// ErrResponseTooLarge : тело ответа API больше допустимого предела
var ErrResponseTooLarge = fmt.Errorf("%w: ответ API слишком большой", ErrNetwork)

// MissingField : ErrMissingField с именем поля
func MissingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// APIError : ответ API с кодом не 2xx
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API вернуло статус %d", e.Status)
	}
	return fmt.Sprintf("API вернуло статус %d: %s", e.Status, e.Message)
}

// Unwrap : вид ошибки определяется статусом ответа
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrAuth
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status >= 400 && e.Status < 500 && e.Message != "":
		return ErrRejected
	default:
		return ErrNetwork
	}
}

// Message : сообщение API, если ошибка пришла от API
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrRejected) {
		return Detail(err, ErrRejected)
	}
	return ""
}

// Detail : текст после kind в цепочке обертки err. Префиксы логирования отбрасываются
func Detail(err, kind error) string {
	text := err.Error()
	marker := kind.Error() + ": "
	if i := strings.Index(text, marker); i >= 0 {
		return text[i+len(marker):]
	}
	return ""
}
