package service

import (
	"context"
	"os"
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/dto"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/memory"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/specification"
	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionCache *memory.SessionCache
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, sessionCache *memory.SessionCache) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		sessionCache: sessionCache,
	}
}

// Login is passwordless: the user record is found or created by email and a
// fresh session token is minted on every call. Sessions are never reused.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Email:     req.Email,
			Name:      req.Name,
			CreatedAt: now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	}

	session := &entity.Session{
		Id:        uuid.New(),
		Token:     uuid.NewString(),
		UserId:    user.Id,
		CreatedAt: now,
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.sessionCache.Save(session)

	accessToken, err := signAccessToken(user.Id, now)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		UserId:       user.Id,
		AccessToken:  accessToken,
		SessionToken: session.Token,
		CreatedAt:    session.CreatedAt,
	}, nil
}

func signAccessToken(userId uuid.UUID, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
