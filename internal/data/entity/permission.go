package entity

type Permission struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Codename string `db:"codename"`
}

type Group struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Permissions []Permission
}
