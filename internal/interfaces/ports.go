package interfaces

import (
	"context"

	"sikes-relay/internal/entities"
)

// Messenger sends a text to a gateway chat id. Delivery is best effort:
// implementations report the outcome but never return an error.
type Messenger interface {
	SendMessage(ctx context.Context, chatID, text string) entities.DeliveryResult
}

// Predictor posts a question to the AI prediction service.
type Predictor interface {
	Predict(ctx context.Context, sessionID, question string, contextVars map[string]string) (entities.PredictionResponse, error)
}

type UserStore interface {
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	Register(ctx context.Context, user *entities.User) (id int, existed bool, err error)
}

type FKTPStore interface {
	GetByID(ctx context.Context, id int) (*entities.FKTP, error)
	GetByPhone(ctx context.Context, phone string) (*entities.FKTP, error)
	SearchByName(ctx context.Context, name string) (*entities.FKTP, error)
	List(ctx context.Context) ([]entities.FKTP, error)
}

type RequestStore interface {
	Create(ctx context.Context, req *entities.ConsultationRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*entities.ConsultationRequest, error)
	StoreReply(ctx context.Context, requestID, rawReply, formattedReply string) (*entities.ConsultationRequest, error)
}

type MessageLogStore interface {
	Append(ctx context.Context, log *entities.MessageLog) error
}
