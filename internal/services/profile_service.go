package services

import (
	"context"
	"net/http"

	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/upload"
)

// ProfileService backs the settings screens. Unlike most services it
// normalises backend failures into *backend.NormalizedError.
type ProfileService struct {
	client *backend.Client
}

func NewProfileService(client *backend.Client) *ProfileService {
	return &ProfileService{client: client}
}

func (s *ProfileService) Get(ctx context.Context) (*models.User, error) {
	env, err := backend.Get[models.User](ctx, s.client, backend.Path(backend.AuthPrefix, "profile"), nil)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	return &env.Data, nil
}

func (s *ProfileService) Update(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	env, err := backend.Put[models.User](ctx, s.client, backend.Path(backend.AuthPrefix, "profile"), req)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	return &env.Data, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) (string, error) {
	env, err := backend.Post[map[string]interface{}](ctx, s.client, backend.Path(backend.AuthPrefix, "change-password"), req)
	if err != nil {
		return "", backend.Normalize(err)
	}
	return env.Message, nil
}

// UploadPicture sends a validated profile picture.
func (s *ProfileService) UploadPicture(ctx context.Context, file upload.File, content backend.FilePart) (*models.User, error) {
	content.Field = upload.ProfilePictureField
	content.Filename = file.Filename
	content.ContentType = file.EffectiveType()

	env, err := backend.Upload[models.User](ctx, s.client, http.MethodPost,
		backend.Path(backend.AuthPrefix, "profile", "picture"), content, nil)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	return &env.Data, nil
}

// UploadDBADocument sends a cleaner's validated DBA document.
func (s *ProfileService) UploadDBADocument(ctx context.Context, file upload.File, content backend.FilePart) (*models.User, error) {
	content.Field = upload.DBADocumentField
	content.Filename = file.Filename
	content.ContentType = file.EffectiveType()

	env, err := backend.Upload[models.User](ctx, s.client, http.MethodPost,
		backend.Path(backend.CleanerPrefix, "dba-document"), content, nil)
	if err != nil {
		return nil, backend.Normalize(err)
	}
	return &env.Data, nil
}
