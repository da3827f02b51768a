package service

import "github.com/AjeffSoft/minhasfinancas/internal/models"

// UserStore is the persistence collaborator for users.
type UserStore interface {
	Save(u *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
}

// UserService implements registration and credential checking.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Authenticate verifies the credentials and returns the user on success.
// The password comparison is exact plaintext equality; this preserves the
// legacy contract and is flagged in DESIGN.md as requiring a salted hash
// in a production rebuild.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewValidationError("O e-mail informado não foi encontrado!")
	}
	if user.Password != password {
		return nil, NewValidationError("Senha inválida!")
	}
	return user, nil
}

// Register persists a new user after checking email uniqueness.
func (s *UserService) Register(u *models.User) (*models.User, error) {
	if err := s.validateEmail(u.Email); err != nil {
		return nil, err
	}
	if err := s.users.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) validateEmail(email string) error {
	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return err
	}
	if exists {
		return NewBusinessError("Já existe um usuário com este e-mail cadastrado!")
	}
	return nil
}

// FindByID returns the user or nil when it does not exist.
func (s *UserService) FindByID(id uint) (*models.User, error) {
	return s.users.FindByID(id)
}
