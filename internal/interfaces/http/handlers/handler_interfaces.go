package handlers

import (
	"context"

	atomdto "github.com/rollerweb/roller/internal/application/atompub/dto"
	entrydto "github.com/rollerweb/roller/internal/application/entry/dto"
	searchdto "github.com/rollerweb/roller/internal/application/search/dto"
	userdto "github.com/rollerweb/roller/internal/application/user/dto"
	"github.com/rollerweb/roller/internal/application/user/usecases"
)

// Use case interfaces consumed by the handlers

type searchEntriesUseCase interface {
	Execute(ctx context.Context, req searchdto.SearchEntriesRequest) (*searchdto.SearchEntriesResponse, error)
}

type getEntryUseCase interface {
	Execute(ctx context.Context, req entrydto.GetEntryRequest) (*entrydto.EntryResponse, error)
}

type moderateCommentUseCase interface {
	Execute(ctx context.Context, req entrydto.ModerateCommentRequest) (*entrydto.CommentStatusResponse, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, req userdto.LoginRequest) (*userdto.LoginResponse, error)
}

type tokenRefresher interface {
	Refresh(refreshToken string) (*usecases.TokenPair, error)
}

type buildServiceDocumentUseCase interface {
	Execute(ctx context.Context, req atomdto.ServiceDocumentRequest) (*atomdto.ServiceDocument, error)
}
