package api

import (
	"context"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	"github.com/kanhadewangan/trpc-blog/internal/rpc"
	"github.com/kanhadewangan/trpc-blog/internal/services"
)

// Procedure inputs. The struct tags are the validation schema: a payload
// violating any of them is rejected before the handler runs.

type createAccountInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,gte=0"`
}

type authenticateInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type idInput struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type createPostInput struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=20"`
	AuthorID int64  `json:"authorId" validate:"required,gt=0"`
}

type authorInput struct {
	AuthorID int64 `json:"authorId" validate:"required,gt=0"`
}

type updatePostInput struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Title       *string `json:"title,omitempty" validate:"omitempty,min=5"`
	Content     *string `json:"content,omitempty" validate:"omitempty,min=20"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

type createCategoryInput struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Slug        string  `json:"slug" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
}

type categoryInput struct {
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
}

type tagPostInput struct {
	PostID     int64 `json:"postId" validate:"required,gt=0"`
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
}

type emptyInput struct{}

type idResult struct {
	ID int64 `json:"id"`
}

// NewRegistry wires every procedure to its service. One procedure, one read
// or one write.
func NewRegistry(us *services.UserService, ps *services.PostService, cs *services.CategoryService) *rpc.Registry {
	reg := rpc.NewRegistry()

	reg.Register(rpc.Mutation("createAccount", func(ctx context.Context, in createAccountInput) (idResult, error) {
		age := 0
		if in.Age != nil {
			age = *in.Age
		}
		id, err := us.CreateAccount(ctx, in.Name, in.Email, in.Password, age)
		return idResult{ID: id}, err
	}))

	reg.Register(rpc.Mutation("authenticate", func(ctx context.Context, in authenticateInput) (models.AuthResult, error) {
		return us.Authenticate(ctx, in.Email, in.Password)
	}))

	reg.Register(rpc.Query("getUserById", func(ctx context.Context, in idInput) ([]models.User, error) {
		return us.GetByID(ctx, in.ID)
	}))

	reg.Register(rpc.Mutation("createPost", func(ctx context.Context, in createPostInput) (models.Post, error) {
		return ps.Create(ctx, in.Title, in.Content, in.AuthorID)
	}))

	reg.Register(rpc.Query("listPosts", func(ctx context.Context, _ emptyInput) ([]models.Post, error) {
		return ps.List(ctx)
	}))

	reg.Register(rpc.Query("listPostsByAuthor", func(ctx context.Context, in authorInput) ([]models.Post, error) {
		return ps.ListByAuthor(ctx, in.AuthorID)
	}))

	reg.Register(rpc.Query("getPostById", func(ctx context.Context, in idInput) ([]models.Post, error) {
		return ps.Get(ctx, in.ID)
	}))

	reg.Register(rpc.Mutation("updatePost", func(ctx context.Context, in updatePostInput) (models.Post, error) {
		return ps.Update(ctx, in.ID, in.Title, in.Content, in.IsPublished)
	}))

	reg.Register(rpc.Mutation("deletePost", func(ctx context.Context, in idInput) (models.Post, error) {
		return ps.Delete(ctx, in.ID)
	}))

	reg.Register(rpc.Mutation("createCategory", func(ctx context.Context, in createCategoryInput) (models.Category, error) {
		return cs.Create(ctx, in.Name, in.Slug, in.Description)
	}))

	reg.Register(rpc.Query("listCategories", func(ctx context.Context, _ emptyInput) ([]models.Category, error) {
		return cs.List(ctx)
	}))

	reg.Register(rpc.Query("listPostsByCategory", func(ctx context.Context, in categoryInput) ([]models.Post, error) {
		return ps.ListByCategory(ctx, in.CategoryID)
	}))

	reg.Register(rpc.Mutation("tagPost", func(ctx context.Context, in tagPostInput) (models.PostCategory, error) {
		return ps.Tag(ctx, in.PostID, in.CategoryID)
	}))

	return reg
}
