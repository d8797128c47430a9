package login

import "time"

const (
	MaxLimit     = 100
	DefaultLimit = 5
	FirstPage    = 1
)

// Login - запись о входе пользователя в том виде, в котором её отдает API.
// ip и device_id хранятся зашифрованными и раскрываются только по запросу.
type Login struct {
	UserID     *string   `json:"user_id"`
	AppVersion string    `json:"app_version"`
	DeviceType *string   `json:"device_type"`
	IP         *string   `json:"ip"`
	Locale     string    `json:"locale"`
	DeviceID   *string   `json:"device_id"`
	CreateDate time.Time `json:"-"`
}

// Filter - параметры выборки записей
type Filter struct {
	Limit           int
	Page            int
	IsEncrypted     bool
	GroupDuplicates bool
}

// Offset возвращает смещение для страницы, нумерация страниц с единицы
func (f Filter) Offset() int {
	if f.Page < FirstPage {
		return 0
	}
	return (f.Page - FirstPage) * f.Limit
}

func (f Filter) Validate() error {
	if f.Limit < 0 || f.Limit > MaxLimit {
		return ErrInvalidLimit
	}
	if f.Page < FirstPage {
		return ErrInvalidPage
	}
	return nil
}
