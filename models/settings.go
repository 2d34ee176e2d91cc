package models

// RemoteSettings adalah kredensial penyimpanan remote (repo GitHub) yang
// diisi sekali lewat endpoint settings lalu disimpan lokal.
type RemoteSettings struct {
	Owner string `json:"owner" validate:"required"`
	Repo  string `json:"repo" validate:"required"`
	Token string `json:"token" validate:"required"`
}

func (s RemoteSettings) Complete() bool {
	return s.Owner != "" && s.Repo != "" && s.Token != ""
}

type UserLoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
