// Package restapi implements the service interfaces against the task REST API.
package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tasky/internal/apiclient"
	"tasky/internal/config"
	"tasky/internal/service"
	"tasky/internal/session"
)

// Requester is the transport used by the services. *apiclient.Client implements it.
type Requester interface {
	Get(ctx context.Context, path string, opts ...apiclient.RequestOption) (*apiclient.Envelope, error)
	Post(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (*apiclient.Envelope, error)
	Put(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (*apiclient.Envelope, error)
	Delete(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (*apiclient.Envelope, error)
}

// Identity yields the user id that scopes list endpoints. *session.Session implements it.
type Identity interface {
	CurrentUserID() int64
}

// Backend bundles the three services sharing one transport.
type Backend struct {
	Auth       *AuthService
	Tasks      *TaskRepository
	Categories *CategoryRepository
}

// New wires the services to a transport and identity.
func New(req Requester, id Identity) *Backend {
	return &Backend{
		Auth:       NewAuthService(req),
		Tasks:      NewTaskRepository(req, id),
		Categories: NewCategoryRepository(req, id),
	}
}

// NewFromConfig builds an apiclient.Client for cfg authorized by sess.
func NewFromConfig(cfg *config.Config, sess *session.Session, logger *zap.Logger) *Backend {
	client := apiclient.New(cfg.BaseURL(), sess,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		apiclient.WithLogger(logger),
		apiclient.WithRateLimit(cfg.RateLimit, rateBurst),
	)
	return New(client, sess)
}

// rateBurst lets a batch command's first few requests through unthrottled.
const rateBurst = 5

var validate = validator.New()

// checkID rejects non-positive ids before any request is made.
func checkID(kind string, id int64) error {
	if err := validate.Var(id, "gt=0"); err != nil {
		return service.NewError(service.KindValidation, fmt.Sprintf("invalid %s id: %d", kind, id))
	}
	return nil
}

// checkIDs rejects any non-positive id in ids. An empty set is valid.
func checkIDs(kind string, ids []int64) error {
	if err := validate.Var(ids, "dive,gt=0"); err != nil {
		return service.NewError(service.KindValidation, fmt.Sprintf("invalid %s ids: %v", kind, ids))
	}
	return nil
}

// envelopeError classifies an unsuccessful envelope. It returns nil for successes.
func envelopeError(env *apiclient.Envelope) error {
	if env.OK() {
		return nil
	}

	status := env.StatusCode
	hint := status
	if status >= 200 && status < 300 {
		// success:false with a 2xx status; the numeric code is the only hint.
		hint = env.ErrorCode()
	}

	kind := service.KindRemote
	switch hint {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = service.KindAuth
	case http.StatusNotFound:
		kind = service.KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		kind = service.KindValidation
	}

	msg := env.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &service.Error{Kind: kind, Status: status, Code: env.ErrorCode(), Message: msg}
}

// expect checks a call that returns no data.
func expect(env *apiclient.Envelope, err error) error {
	if err != nil {
		return err
	}
	return envelopeError(env)
}

// decode checks a call and decodes its data. found is false when data is absent.
func decode[T any](env *apiclient.Envelope, err error) (v T, found bool, _ error) {
	if err := expect(env, err); err != nil {
		return v, false, err
	}
	v, found, err = apiclient.DecodeData[T](env)
	if err != nil {
		return v, false, &service.Error{Kind: service.KindTransport, Status: env.StatusCode, Message: "malformed response data", Err: err}
	}
	return v, found, nil
}
