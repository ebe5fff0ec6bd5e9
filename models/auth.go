package models

type SignupRequest struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	FirstName string `form:"firstname"`
	LastName  string `form:"lastname"`
	Password  string `form:"password"`
	Repeat    string `form:"repeat"`
}

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
