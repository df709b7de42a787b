package service

// PasswordService hides the hashing scheme behind encoded PHC-style
// strings stored on the user row.
type PasswordService interface {
	Hash(password string) (encoded string, err error)
	Verify(password, encoded string) (ok bool, err error)
}
