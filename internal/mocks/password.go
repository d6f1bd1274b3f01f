package mocks

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// for testing. The default behavior prefixes the plaintext so hashes are
// recognizable and reversible in assertions.
type MockPasswordHasher struct {
	// Function fields for customizable behavior
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// Default errors used when functions aren't explicitly defined
	HashErr    error
	CompareErr error
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return m.CompareErr
}
