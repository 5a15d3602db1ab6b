package data

// Repository interfaces over the persisted collections. Two implementations
// exist: FileStore (one JSON array per collection, whole-file rewrite on
// every mutation) and SQLiteStore (embedded transactional store, closes the
// read-then-write seat race at the storage level).

type RoomRepository interface {
	List() ([]Room, error)
	GetByID(id int) (*Room, error)
	Insert(room Room) (Room, error)
	Update(room Room) error
	Delete(id int) error
}

type MovieRepository interface {
	List() ([]Movie, error)
	GetByID(id int) (*Movie, error)
	Insert(movie Movie) (Movie, error)
	Update(movie Movie) error
	Delete(id int) error
}

type SessionRepository interface {
	List() ([]Session, error)
	GetByID(id int) (*Session, error)
	Insert(session Session) (Session, error)
	Update(session Session) error
	Delete(id int) error
}

type TicketRepository interface {
	List() ([]Ticket, error)
	ListBySession(sessionID int) ([]Ticket, error)
	GetByID(id int) (*Ticket, error)
	Insert(ticket Ticket) (Ticket, error)
	Update(ticket Ticket) error
	Delete(id int) error
}

type ProductRepository interface {
	List() ([]Product, error)
	GetByID(id int) (*Product, error)
	Insert(product Product) (Product, error)
	Update(product Product) error
	Delete(id int) error
}

type UserRepository interface {
	List() ([]User, error)
	GetByID(id int) (*User, error)
	GetByEmail(email string) (*User, error)
	Insert(user User) (User, error)
}

type SettingsRepository interface {
	Get() (Settings, error)
	Put(settings Settings) error
}

type LogRepository interface {
	List() ([]LogEntry, error)
	Append(entry LogEntry) (LogEntry, error)
}

// Store aggregates the per-collection repositories.
type Store interface {
	Rooms() RoomRepository
	Movies() MovieRepository
	Sessions() SessionRepository
	Tickets() TicketRepository
	Products() ProductRepository
	Users() UserRepository
	Settings() SettingsRepository
	Logs() LogRepository
}
