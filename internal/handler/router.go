package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
)

// Repositories groups the stores the handlers depend on.
type Repositories struct {
	Countries repository.CountryRepository
	Authors   repository.AuthorRepository
	Books     repository.BookRepository
	Reviewers repository.ReviewerRepository
	Reviews   repository.ReviewRepository
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Countries: repository.NewGormCountryRepository(db),
		Authors:   repository.NewGormAuthorRepository(db),
		Books:     repository.NewGormBookRepository(db),
		Reviewers: repository.NewGormReviewerRepository(db),
		Reviews:   repository.NewGormReviewRepository(db),
	}
}

// RegisterAPI mounts every resource family on r.
func RegisterAPI(r *gin.RouterGroup, repos Repositories) {
	NewCountryHandler(repos.Countries, repos.Authors).RegisterRoutes(r)
	NewAuthorHandler(repos.Authors, repos.Countries, repos.Books).RegisterRoutes(r)
	NewBookHandler(repos.Books, repos.Authors).RegisterRoutes(r)
	NewReviewerHandler(repos.Reviewers, repos.Reviews).RegisterRoutes(r)
	NewReviewHandler(repos.Reviews, repos.Books, repos.Reviewers).RegisterRoutes(r)
}
