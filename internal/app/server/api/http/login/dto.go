package login

import "logindash/internal/domain/login"

type listInput struct {
	Limit           int  `query:"limit" required:"true" minimum:"0" maximum:"100" example:"5" doc:"Количество записей на странице"`
	Page            int  `query:"page" required:"true" minimum:"1" example:"1" doc:"Номер страницы, начиная с 1"`
	IsEncrypted     bool `query:"isEncrypted" required:"true" example:"true" doc:"Отдавать ip и device_id зашифрованными"`
	GroupDuplicates bool `query:"groupDuplicates" default:"false" doc:"Только повторные входы с той же парой ip/device_id"`
}

type listOutput struct {
	Body []login.Login
}

func (in *listInput) filter() login.Filter {
	return login.Filter{
		Limit:           in.Limit,
		Page:            in.Page,
		IsEncrypted:     in.IsEncrypted,
		GroupDuplicates: in.GroupDuplicates,
	}
}
