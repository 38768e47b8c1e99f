package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rlacksdl104/dsmm-chat/internal/store"
	"github.com/rlacksdl104/dsmm-chat/internal/types"
)

var (
	// ErrNotSignedIn is returned by Restore when no session exists.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrInvalidCredentials covers unknown emails and wrong passwords
	// uniformly, so sign-in failures don't leak which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned by SignUp for an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// Identity is the current user as seen by the rest of the client.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Manager handles sign-up, sign-in, and session restore against the
// users collection, with the active session persisted in the dsmm dot
// directory.
type Manager struct {
	store *store.Store
	dir   string
}

type sessionFile struct {
	UID       string `json:"uid"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
}

// NewManager creates a session manager storing its session file in dir.
func NewManager(st *store.Store, dir string) *Manager {
	return &Manager{store: st, dir: dir}
}

// SignUp registers a new user and starts a session.
func (m *Manager) SignUp(email, password, displayName string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, fmt.Errorf("invalid email address")
	}
	if len(password) < 6 {
		return Identity{}, fmt.Errorf("password must be at least 6 characters")
	}

	if _, err := m.findByEmail(email); err == nil {
		return Identity{}, ErrEmailTaken
	} else if !errors.Is(err, ErrInvalidCredentials) {
		return Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, err
	}

	uid, err := m.store.Create("users", map[string]any{
		"email":        email,
		"displayName":  strings.TrimSpace(displayName),
		"passwordHash": string(hash),
	})
	if err != nil {
		return Identity{}, err
	}

	identity := Identity{UID: uid, Email: email, DisplayName: strings.TrimSpace(displayName)}
	if err := m.writeSession(uid); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// SignIn verifies credentials and starts a session.
func (m *Manager) SignIn(email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	doc, err := m.findByEmail(email)
	if err != nil {
		return Identity{}, err
	}

	hash, _ := doc.Data["passwordHash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Identity{}, ErrInvalidCredentials
	}

	identity := identityFromDoc(*doc)
	if err := m.writeSession(identity.UID); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Restore loads the persisted session and resolves the identity.
// The identity is available synchronously afterwards; callers gate the
// chat UI on a successful Restore.
func (m *Manager) Restore() (Identity, error) {
	data, err := os.ReadFile(m.sessionPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, ErrNotSignedIn
		}
		return Identity{}, err
	}
	var sess sessionFile
	if err := json.Unmarshal(data, &sess); err != nil {
		return Identity{}, err
	}

	doc, err := m.store.GetOnce("users", sess.UID)
	if err != nil {
		return Identity{}, err
	}
	if doc == nil {
		// Account removed since the session was written.
		_ = m.SignOut()
		return Identity{}, ErrNotSignedIn
	}
	return identityFromDoc(*doc), nil
}

// SignOut removes the persisted session.
func (m *Manager) SignOut() error {
	err := os.Remove(m.sessionPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UpdateProfile changes the user's display name.
func (m *Manager) UpdateProfile(uid, displayName string) error {
	return m.store.Update("users", uid, map[string]any{
		"displayName": strings.TrimSpace(displayName),
	})
}

// Directory returns the current snapshot of all known users. Staleness
// is acceptable; it is read fresh wherever mention resolution runs.
func (m *Manager) Directory() ([]types.User, error) {
	docs, err := m.store.GetAll("users")
	if err != nil {
		return nil, err
	}
	return UsersFromDocs(docs), nil
}

// UsersFromDocs decodes a users-collection snapshot into directory entries.
func UsersFromDocs(docs []store.Document) []types.User {
	users := make([]types.User, 0, len(docs))
	for _, doc := range docs {
		var user types.User
		if err := doc.Decode(&user); err != nil {
			continue
		}
		users = append(users, user)
	}
	return users
}

func (m *Manager) findByEmail(email string) (*store.Document, error) {
	docs, err := m.store.GetAll("users")
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if stored, _ := docs[i].Data["email"].(string); stored == email {
			return &docs[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (m *Manager) writeSession(uid string) error {
	sess := sessionFile{
		UID:       uid,
		Token:     uuid.NewString(),
		CreatedAt: time.Now().Unix(),
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(m.sessionPath(), data, 0o600)
}

func (m *Manager) sessionPath() string {
	return filepath.Join(m.dir, "session.json")
}

func identityFromDoc(doc store.Document) Identity {
	email, _ := doc.Data["email"].(string)
	name, _ := doc.Data["displayName"].(string)
	return Identity{UID: doc.ID, Email: email, DisplayName: name}
}
