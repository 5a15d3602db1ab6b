package data

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"cinemabackend/internal/logger"
)

// FileStore keeps each collection as one JSON array in its own file under a
// data directory. Every operation re-reads the whole collection, mutates it
// in memory and rewrites the file. There is no locking and no atomic rename:
// this mirrors the legacy behavior exactly, including its known races (two
// concurrent purchases can both observe a free seat). Use SQLiteStore when
// that guarantee matters.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0775); err != nil {
		return nil, &PersistenceError{Op: "create data directory", Err: err}
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Rooms() RoomRepository        { return &fileRooms{fs} }
func (fs *FileStore) Movies() MovieRepository      { return &fileMovies{fs} }
func (fs *FileStore) Sessions() SessionRepository  { return &fileSessions{fs} }
func (fs *FileStore) Tickets() TicketRepository    { return &fileTickets{fs} }
func (fs *FileStore) Products() ProductRepository  { return &fileProducts{fs} }
func (fs *FileStore) Users() UserRepository        { return &fileUsers{fs} }
func (fs *FileStore) Settings() SettingsRepository { return &fileSettings{fs} }
func (fs *FileStore) Logs() LogRepository          { return &fileLogs{fs} }

func (fs *FileStore) path(name string) string {
	return filepath.Join(fs.dir, name)
}

// readCollection loads a JSON array file. A missing file is an empty
// collection. Malformed JSON is a PersistenceError unless lenient is set, in
// which case the collection degrades to empty (observed legacy fallback for
// the audit log and ticket files).
func readCollection[T any](fs *FileStore, name string, lenient bool) ([]T, error) {
	raw, err := os.ReadFile(fs.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, &PersistenceError{Op: "read " + name, Err: err}
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if lenient {
			logger.LogWarn("Malformed JSON in %s, treating as empty collection: %v", name, err)
			return []T{}, nil
		}
		return nil, &PersistenceError{Op: "parse " + name, Err: err}
	}
	return items, nil
}

// writeCollection rewrites the whole file. Not atomic: a crash mid-write can
// leave a truncated file behind, which is the legacy store's known risk.
func writeCollection[T any](fs *FileStore, name string, items []T) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal " + name, Err: err}
	}
	if err := os.WriteFile(fs.path(name), raw, 0664); err != nil {
		return &PersistenceError{Op: "write " + name, Err: err}
	}
	return nil
}

// nextID assigns per-collection monotonic integer ids: max(existing)+1, or 1
// when the collection is empty.
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, item := range items {
		if id(item) > max {
			max = id(item)
		}
	}
	return max + 1
}

// =============================================================================
// ROOMS
// =============================================================================

type fileRooms struct{ fs *FileStore }

func (r *fileRooms) List() ([]Room, error) {
	return readCollection[Room](r.fs, "rooms.json", false)
}

func (r *fileRooms) GetByID(id int) (*Room, error) {
	rooms, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "room", ID: id}
}

func (r *fileRooms) Insert(room Room) (Room, error) {
	rooms, err := r.List()
	if err != nil {
		return Room{}, err
	}
	room.ID = nextID(rooms, func(x Room) int { return x.ID })
	rooms = append(rooms, room)
	if err := writeCollection(r.fs, "rooms.json", rooms); err != nil {
		return Room{}, err
	}
	return room, nil
}

func (r *fileRooms) Update(room Room) error {
	rooms, err := r.List()
	if err != nil {
		return err
	}
	for i := range rooms {
		if rooms[i].ID == room.ID {
			rooms[i] = room
			return writeCollection(r.fs, "rooms.json", rooms)
		}
	}
	return &NotFoundError{Entity: "room", ID: room.ID}
}

func (r *fileRooms) Delete(id int) error {
	rooms, err := r.List()
	if err != nil {
		return err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			rooms = append(rooms[:i], rooms[i+1:]...)
			return writeCollection(r.fs, "rooms.json", rooms)
		}
	}
	return &NotFoundError{Entity: "room", ID: id}
}

// =============================================================================
// MOVIES
// =============================================================================

type fileMovies struct{ fs *FileStore }

func (m *fileMovies) List() ([]Movie, error) {
	return readCollection[Movie](m.fs, "movies.json", false)
}

func (m *fileMovies) GetByID(id int) (*Movie, error) {
	movies, err := m.List()
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ID == id {
			return &movies[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "movie", ID: id}
}

func (m *fileMovies) Insert(movie Movie) (Movie, error) {
	movies, err := m.List()
	if err != nil {
		return Movie{}, err
	}
	movie.ID = nextID(movies, func(x Movie) int { return x.ID })
	movies = append(movies, movie)
	if err := writeCollection(m.fs, "movies.json", movies); err != nil {
		return Movie{}, err
	}
	return movie, nil
}

func (m *fileMovies) Update(movie Movie) error {
	movies, err := m.List()
	if err != nil {
		return err
	}
	for i := range movies {
		if movies[i].ID == movie.ID {
			movies[i] = movie
			return writeCollection(m.fs, "movies.json", movies)
		}
	}
	return &NotFoundError{Entity: "movie", ID: movie.ID}
}

func (m *fileMovies) Delete(id int) error {
	movies, err := m.List()
	if err != nil {
		return err
	}
	for i := range movies {
		if movies[i].ID == id {
			movies = append(movies[:i], movies[i+1:]...)
			return writeCollection(m.fs, "movies.json", movies)
		}
	}
	return &NotFoundError{Entity: "movie", ID: id}
}

// =============================================================================
// SESSIONS
// =============================================================================

type fileSessions struct{ fs *FileStore }

func (s *fileSessions) List() ([]Session, error) {
	return readCollection[Session](s.fs, "sessions.json", false)
}

func (s *fileSessions) GetByID(id int) (*Session, error) {
	sessions, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "session", ID: id}
}

func (s *fileSessions) Insert(session Session) (Session, error) {
	sessions, err := s.List()
	if err != nil {
		return Session{}, err
	}
	session.ID = nextID(sessions, func(x Session) int { return x.ID })
	sessions = append(sessions, session)
	if err := writeCollection(s.fs, "sessions.json", sessions); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *fileSessions) Update(session Session) error {
	sessions, err := s.List()
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			return writeCollection(s.fs, "sessions.json", sessions)
		}
	}
	return &NotFoundError{Entity: "session", ID: session.ID}
}

func (s *fileSessions) Delete(id int) error {
	sessions, err := s.List()
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			sessions = append(sessions[:i], sessions[i+1:]...)
			return writeCollection(s.fs, "sessions.json", sessions)
		}
	}
	return &NotFoundError{Entity: "session", ID: id}
}

// =============================================================================
// TICKETS
// =============================================================================

type fileTickets struct{ fs *FileStore }

func (t *fileTickets) List() ([]Ticket, error) {
	return readCollection[Ticket](t.fs, "tickets.json", true)
}

func (t *fileTickets) ListBySession(sessionID int) ([]Ticket, error) {
	tickets, err := t.List()
	if err != nil {
		return nil, err
	}
	var result []Ticket
	for _, ticket := range tickets {
		if ticket.SessionID == sessionID {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (t *fileTickets) GetByID(id int) (*Ticket, error) {
	tickets, err := t.List()
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "ticket", ID: id}
}

func (t *fileTickets) Insert(ticket Ticket) (Ticket, error) {
	tickets, err := t.List()
	if err != nil {
		return Ticket{}, err
	}
	ticket.ID = nextID(tickets, func(x Ticket) int { return x.ID })
	tickets = append(tickets, ticket)
	if err := writeCollection(t.fs, "tickets.json", tickets); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

func (t *fileTickets) Update(ticket Ticket) error {
	tickets, err := t.List()
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == ticket.ID {
			tickets[i] = ticket
			return writeCollection(t.fs, "tickets.json", tickets)
		}
	}
	return &NotFoundError{Entity: "ticket", ID: ticket.ID}
}

func (t *fileTickets) Delete(id int) error {
	tickets, err := t.List()
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			tickets = append(tickets[:i], tickets[i+1:]...)
			return writeCollection(t.fs, "tickets.json", tickets)
		}
	}
	return &NotFoundError{Entity: "ticket", ID: id}
}

// =============================================================================
// PRODUCTS
// =============================================================================

type fileProducts struct{ fs *FileStore }

func (p *fileProducts) List() ([]Product, error) {
	return readCollection[Product](p.fs, "products.json", false)
}

func (p *fileProducts) GetByID(id int) (*Product, error) {
	products, err := p.List()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "product", ID: id}
}

func (p *fileProducts) Insert(product Product) (Product, error) {
	products, err := p.List()
	if err != nil {
		return Product{}, err
	}
	product.ID = nextID(products, func(x Product) int { return x.ID })
	products = append(products, product)
	if err := writeCollection(p.fs, "products.json", products); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (p *fileProducts) Update(product Product) error {
	products, err := p.List()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = product
			return writeCollection(p.fs, "products.json", products)
		}
	}
	return &NotFoundError{Entity: "product", ID: product.ID}
}

func (p *fileProducts) Delete(id int) error {
	products, err := p.List()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return writeCollection(p.fs, "products.json", products)
		}
	}
	return &NotFoundError{Entity: "product", ID: id}
}

// =============================================================================
// USERS
// =============================================================================

type fileUsers struct{ fs *FileStore }

func (u *fileUsers) List() ([]User, error) {
	return readCollection[User](u.fs, "users.json", false)
}

func (u *fileUsers) GetByID(id int) (*User, error) {
	users, err := u.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "user", ID: id}
}

func (u *fileUsers) GetByEmail(email string) (*User, error) {
	users, err := u.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "user"}
}

func (u *fileUsers) Insert(user User) (User, error) {
	users, err := u.List()
	if err != nil {
		return User{}, err
	}
	user.ID = nextID(users, func(x User) int { return x.ID })
	users = append(users, user)
	if err := writeCollection(u.fs, "users.json", users); err != nil {
		return User{}, err
	}
	return user, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

type fileSettings struct{ fs *FileStore }

func (s *fileSettings) Get() (Settings, error) {
	raw, err := os.ReadFile(s.fs.path("settings.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, &PersistenceError{Op: "read settings.json", Err: err}
	}

	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, &PersistenceError{Op: "parse settings.json", Err: err}
	}
	if settings.MaxCancelDays < 1 {
		settings.MaxCancelDays = DefaultSettings().MaxCancelDays
	}
	return settings, nil
}

func (s *fileSettings) Put(settings Settings) error {
	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "marshal settings.json", Err: err}
	}
	if err := os.WriteFile(s.fs.path("settings.json"), raw, 0664); err != nil {
		return &PersistenceError{Op: "write settings.json", Err: err}
	}
	return nil
}

// =============================================================================
// AUDIT LOG
// =============================================================================

type fileLogs struct{ fs *FileStore }

func (l *fileLogs) List() ([]LogEntry, error) {
	return readCollection[LogEntry](l.fs, "log.json", true)
}

func (l *fileLogs) Append(entry LogEntry) (LogEntry, error) {
	entries, err := l.List()
	if err != nil {
		return LogEntry{}, err
	}
	entry.ID = nextID(entries, func(x LogEntry) int { return x.ID })
	entries = append(entries, entry)
	if err := writeCollection(l.fs, "log.json", entries); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}
