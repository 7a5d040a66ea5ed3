package usecase

import (
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/pkg/cache"
	"ecommerce-demo/pkg/mailer"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	OTP        OTPService
	Signup     SignupService
	Product    ProductService
	Cart       CartService
	Permission PermissionService
	Mail       MailService
}

// Deps are the infrastructure pieces the services need besides repositories
type Deps struct {
	Cache     *cache.Cache
	Mailer    mailer.Mailer
	Publisher EventPublisher
	Tokens    *utils.TokenManager
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	otp := NewOTPService(repo.User, repo.OTP, deps.Mailer, config.OTP, log)

	return &Service{
		Auth:       NewAuthService(repo.User, otp, deps.Publisher, deps.Tokens, log),
		User:       NewUserService(repo.User, deps.Cache, log),
		OTP:        otp,
		Signup:     NewSignupService(repo.User, otp, deps.Mailer, log),
		Product:    NewProductService(repo.Product, log),
		Cart:       NewCartService(repo, log),
		Permission: NewPermissionService(repo, log),
		Mail:       NewMailService(deps.Mailer, log),
	}
}
