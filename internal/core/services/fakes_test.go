package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the lookup and error semantics
// of the GORM implementations, including gorm.ErrRecordNotFound on
// missing rows and an atomic conditional revoke.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByVerificationToken(_ context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.EmailVerificationToken != nil && *user.EmailVerificationToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type fakeRoleRepo struct {
	mu          sync.Mutex
	roles       map[string]*models.Role
	assignments map[string][]string
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	r := &fakeRoleRepo{
		roles:       make(map[string]*models.Role),
		assignments: make(map[string][]string),
	}
	for i, name := range names {
		r.roles[name] = &models.Role{ID: fmt.Sprintf("role-%d", i+1), Name: name}
	}
	return r
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *fakeRoleRepo) GetRoleNames(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, roleID := range r.assignments[userID] {
		for _, role := range r.roles {
			if role.ID == roleID {
				names = append(names, role.Name)
			}
		}
	}
	return names, nil
}

func (r *fakeRoleRepo) AssignRole(_ context.Context, userID, roleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[userID] = append(r.assignments[userID], roleID)
	return nil
}

func (r *fakeRoleRepo) AssignRoles(ctx context.Context, userID string, roleIDs []string) error {
	for _, roleID := range roleIDs {
		if err := r.AssignRole(ctx, userID, roleID); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRoleRepo) HasRole(_ context.Context, userID, roleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, assigned := range r.assignments[userID] {
		if assigned == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRoleRepo) assignmentCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assignments[userID])
}

type fakeRefreshTokenRepo struct {
	mu        sync.Mutex
	nextID    int
	records   map[string]*models.RefreshToken
	users     *fakeUserRepo
	createErr error
}

func newFakeRefreshTokenRepo(users *fakeUserRepo) *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{
		records: make(map[string]*models.RefreshToken),
		users:   users,
	}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, record *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	record.ID = fmt.Sprintf("rt-%d", r.nextID)
	record.CreatedAt = time.Now()
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeRefreshTokenRepo) GetActiveByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.Token == token && !record.IsRevoked {
			clone := *record
			if r.users != nil {
				if user, err := r.users.GetByID(context.Background(), record.UserID); err == nil {
					clone.User = *user
				}
			}
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.IsRevoked {
		return false, nil
	}
	record.IsRevoked = true
	return true, nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, record := range r.records {
		if time.Now().After(record.ExpiresAt) {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeRefreshTokenRepo) activeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, record := range r.records {
		if !record.IsRevoked {
			n++
		}
	}
	return n
}

func (r *fakeRefreshTokenRepo) expire(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.Token == token {
			record.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}
}

type fakeEventTypeRepo struct {
	types map[string]*models.EventType
}

func newFakeEventTypeRepo(ids ...string) *fakeEventTypeRepo {
	r := &fakeEventTypeRepo{types: make(map[string]*models.EventType)}
	for _, id := range ids {
		r.types[id] = &models.EventType{ID: id, Name: "Type " + id}
	}
	return r
}

func (r *fakeEventTypeRepo) GetByID(_ context.Context, id string) (*models.EventType, error) {
	eventType, ok := r.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *eventType
	return &clone, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int
	events map[string]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*models.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	event.ID = fmt.Sprintf("event-%d", r.nextID)
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	for i := range event.Tickets {
		event.Tickets[i].ID = fmt.Sprintf("%s-ticket-%d", event.ID, i+1)
		event.Tickets[i].EventID = event.ID
	}
	clone := cloneEvent(event)
	r.events[event.ID] = clone
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneEvent(event), nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Event, 0, len(r.events))
	for _, event := range r.events {
		result = append(result, cloneEvent(event))
	}
	return result, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[event.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.UpdatedAt = time.Now()
	updated := cloneEvent(event)
	updated.Tickets = existing.Tickets
	r.events[event.ID] = updated
	return nil
}

func (r *fakeEventRepo) ReplaceTickets(_ context.Context, eventID string, tickets []models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.Tickets = make([]models.Ticket, len(tickets))
	for i, t := range tickets {
		t.ID = fmt.Sprintf("%s-ticket-%d", eventID, i+1)
		t.EventID = eventID
		event.Tickets[i] = t
	}
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := int64(len(r.events))
	r.events = make(map[string]*models.Event)
	return deleted, nil
}

func cloneEvent(event *models.Event) *models.Event {
	clone := *event
	clone.Tickets = make([]models.Ticket, len(event.Tickets))
	copy(clone.Tickets, event.Tickets)
	if event.Tags != nil {
		clone.Tags = make([]string, len(event.Tags))
		copy(clone.Tags, event.Tags)
	}
	return &clone
}

type fakeNotifier struct {
	mu     sync.Mutex
	calls  int
	tokens []string
	err    error
}

func (n *fakeNotifier) NotifyUserRegistered(_ context.Context, _, _, verificationToken string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.tokens = append(n.tokens, verificationToken)
	return n.err
}
