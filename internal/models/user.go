package models

// User is the signed-in shopper. Fields are caller supplied and only checked for blanks.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	LoginTime string `json:"loginTime"`
}
