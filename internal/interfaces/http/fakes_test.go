package http

import (
	"context"
	"strings"
	"time"

	"sikes-relay/internal/entities"
)

type fakeUserStore struct {
	byPhone map[string]*entities.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byPhone: make(map[string]*entities.User), nextID: 1}
}

func (f *fakeUserStore) GetByPhone(_ context.Context, phone string) (*entities.User, error) {
	return f.byPhone[phone], nil
}

func (f *fakeUserStore) Register(_ context.Context, user *entities.User) (int, bool, error) {
	if existing, ok := f.byPhone[user.Phone]; ok {
		return existing.ID, true, nil
	}
	user.ID = f.nextID
	f.nextID++
	f.byPhone[user.Phone] = user
	return user.ID, false, nil
}

type fakeFKTPStore struct {
	byID map[int]*entities.FKTP
}

func newFakeFKTPStore(fktps ...entities.FKTP) *fakeFKTPStore {
	f := &fakeFKTPStore{byID: make(map[int]*entities.FKTP)}
	for i := range fktps {
		f.byID[fktps[i].ID] = &fktps[i]
	}
	return f
}

func (f *fakeFKTPStore) GetByID(_ context.Context, id int) (*entities.FKTP, error) {
	return f.byID[id], nil
}

func (f *fakeFKTPStore) GetByPhone(_ context.Context, phone string) (*entities.FKTP, error) {
	for _, fktp := range f.byID {
		if fktp.Phone == phone {
			return fktp, nil
		}
	}
	return nil, nil
}

func (f *fakeFKTPStore) SearchByName(_ context.Context, name string) (*entities.FKTP, error) {
	for _, fktp := range f.byID {
		if strings.Contains(strings.ToLower(fktp.Name), strings.ToLower(name)) {
			return fktp, nil
		}
	}
	return nil, nil
}

func (f *fakeFKTPStore) List(_ context.Context) ([]entities.FKTP, error) {
	var out []entities.FKTP
	for _, fktp := range f.byID {
		out = append(out, *fktp)
	}
	return out, nil
}

type fakeRequestStore struct {
	byRequestID map[string]*entities.ConsultationRequest
	nextID      int
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{byRequestID: make(map[string]*entities.ConsultationRequest), nextID: 1}
}

func (f *fakeRequestStore) Create(_ context.Context, req *entities.ConsultationRequest) error {
	req.ID = f.nextID
	f.nextID++
	req.Status = entities.RequestStatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	clone := *req
	f.byRequestID[req.RequestID] = &clone
	return nil
}

func (f *fakeRequestStore) GetByRequestID(_ context.Context, requestID string) (*entities.ConsultationRequest, error) {
	return f.byRequestID[requestID], nil
}

func (f *fakeRequestStore) StoreReply(_ context.Context, requestID, rawReply, formattedReply string) (*entities.ConsultationRequest, error) {
	req, ok := f.byRequestID[requestID]
	if !ok {
		return nil, nil
	}
	req.RawReply = rawReply
	if formattedReply != "" {
		req.FormattedReply = formattedReply
	}
	req.Status = entities.RequestStatusReplied
	req.UpdatedAt = time.Now()
	clone := *req
	return &clone, nil
}

type fakeLogStore struct {
	entries []entities.MessageLog
}

func (f *fakeLogStore) Append(_ context.Context, log *entities.MessageLog) error {
	f.entries = append(f.entries, *log)
	return nil
}

type sentMessage struct {
	ChatID string
	Text   string
}

type fakeMessenger struct {
	sent    []sentMessage
	deliver bool
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{deliver: true}
}

func (f *fakeMessenger) SendMessage(_ context.Context, chatID, text string) entities.DeliveryResult {
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text})
	if f.deliver {
		return entities.Delivered()
	}
	return entities.DeliveryFailed("gateway down")
}

type fakePredictor struct {
	response entities.PredictionResponse
	err      error
	calls    int
}

func (f *fakePredictor) Predict(_ context.Context, sessionID, question string, vars map[string]string) (entities.PredictionResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}
