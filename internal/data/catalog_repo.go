package data

import (
	"database/sql"
	"errors"
)

// =============================================================================
// MOVIE REPOSITORY (sqlite)
// =============================================================================

type sqlMovies struct{ store *SQLiteStore }

func (m *sqlMovies) List() ([]Movie, error) {
	rows, err := m.store.query(`SELECT id, title, duration, image FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Movie
	for rows.Next() {
		var movie Movie
		var image sql.NullString
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Duration, &image); err != nil {
			return nil, &PersistenceError{Op: "scan movie", Err: err}
		}
		movie.Image = image.String
		result = append(result, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate movies", Err: err}
	}
	return result, nil
}

func (m *sqlMovies) GetByID(id int) (*Movie, error) {
	var movie Movie
	var image sql.NullString
	err := m.store.queryRow(`SELECT id, title, duration, image FROM movies WHERE id = ?`, id).
		Scan(&movie.ID, &movie.Title, &movie.Duration, &image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "movie", ID: id}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "scan movie", Err: err}
	}
	movie.Image = image.String
	return &movie, nil
}

func (m *sqlMovies) Insert(movie Movie) (Movie, error) {
	res, err := m.store.exec(
		`INSERT INTO movies (title, duration, image) VALUES (?, ?, ?)`,
		movie.Title, movie.Duration, movie.Image,
	)
	if err != nil {
		return Movie{}, err
	}
	id, _ := res.LastInsertId()
	movie.ID = int(id)
	return movie, nil
}

func (m *sqlMovies) Update(movie Movie) error {
	res, err := m.store.exec(
		`UPDATE movies SET title = ?, duration = ?, image = ? WHERE id = ?`,
		movie.Title, movie.Duration, movie.Image, movie.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "movie", ID: movie.ID}
	}
	return nil
}

func (m *sqlMovies) Delete(id int) error {
	res, err := m.store.exec(`DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "movie", ID: id}
	}
	return nil
}

// =============================================================================
// PRODUCT REPOSITORY (sqlite)
// =============================================================================

type sqlProducts struct{ store *SQLiteStore }

func (p *sqlProducts) List() ([]Product, error) {
	rows, err := p.store.query(`SELECT id, name, price, stock, image FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var product Product
		var image sql.NullString
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Stock, &image); err != nil {
			return nil, &PersistenceError{Op: "scan product", Err: err}
		}
		product.Image = image.String
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate products", Err: err}
	}
	return result, nil
}

func (p *sqlProducts) GetByID(id int) (*Product, error) {
	var product Product
	var image sql.NullString
	err := p.store.queryRow(`SELECT id, name, price, stock, image FROM products WHERE id = ?`, id).
		Scan(&product.ID, &product.Name, &product.Price, &product.Stock, &image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "scan product", Err: err}
	}
	product.Image = image.String
	return &product, nil
}

func (p *sqlProducts) Insert(product Product) (Product, error) {
	res, err := p.store.exec(
		`INSERT INTO products (name, price, stock, image) VALUES (?, ?, ?, ?)`,
		product.Name, product.Price, product.Stock, product.Image,
	)
	if err != nil {
		return Product{}, err
	}
	id, _ := res.LastInsertId()
	product.ID = int(id)
	return product, nil
}

func (p *sqlProducts) Update(product Product) error {
	res, err := p.store.exec(
		`UPDATE products SET name = ?, price = ?, stock = ?, image = ? WHERE id = ?`,
		product.Name, product.Price, product.Stock, product.Image, product.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "product", ID: product.ID}
	}
	return nil
}

func (p *sqlProducts) Delete(id int) error {
	res, err := p.store.exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "product", ID: id}
	}
	return nil
}

// =============================================================================
// USER REPOSITORY (sqlite)
// =============================================================================

type sqlUsers struct{ store *SQLiteStore }

func (u *sqlUsers) List() ([]User, error) {
	rows, err := u.store.query(`SELECT id, name, email, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role); err != nil {
			return nil, &PersistenceError{Op: "scan user", Err: err}
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate users", Err: err}
	}
	return result, nil
}

func (u *sqlUsers) GetByID(id int) (*User, error) {
	var user User
	err := u.store.queryRow(`SELECT id, name, email, role FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "user", ID: id}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "scan user", Err: err}
	}
	return &user, nil
}

func (u *sqlUsers) GetByEmail(email string) (*User, error) {
	var user User
	err := u.store.queryRow(`SELECT id, name, email, role FROM users WHERE email = ? COLLATE NOCASE`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "scan user", Err: err}
	}
	return &user, nil
}

func (u *sqlUsers) Insert(user User) (User, error) {
	res, err := u.store.exec(
		`INSERT INTO users (name, email, role) VALUES (?, ?, ?)`,
		user.Name, user.Email, user.Role,
	)
	if err != nil {
		return User{}, err
	}
	id, _ := res.LastInsertId()
	user.ID = int(id)
	return user, nil
}

// =============================================================================
// SETTINGS REPOSITORY (sqlite)
// =============================================================================

type sqlSettings struct{ store *SQLiteStore }

func (s *sqlSettings) Get() (Settings, error) {
	var settings Settings
	err := s.store.queryRow(`SELECT max_cancel_days FROM settings WHERE id = 1`).
		Scan(&settings.MaxCancelDays)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, &PersistenceError{Op: "scan settings", Err: err}
	}
	if settings.MaxCancelDays < 1 {
		settings.MaxCancelDays = DefaultSettings().MaxCancelDays
	}
	return settings, nil
}

func (s *sqlSettings) Put(settings Settings) error {
	_, err := s.store.exec(
		`INSERT INTO settings (id, max_cancel_days) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET max_cancel_days = excluded.max_cancel_days`,
		settings.MaxCancelDays,
	)
	return err
}

// =============================================================================
// AUDIT LOG REPOSITORY (sqlite)
// =============================================================================

type sqlLogs struct{ store *SQLiteStore }

func (l *sqlLogs) List() ([]LogEntry, error) {
	rows, err := l.store.query(`SELECT id, user_id, user_name, description, date FROM audit_log ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LogEntry
	for rows.Next() {
		var entry LogEntry
		var userName sql.NullString
		var dateStr string
		if err := rows.Scan(&entry.ID, &entry.UserID, &userName, &entry.Description, &dateStr); err != nil {
			return nil, &PersistenceError{Op: "scan log entry", Err: err}
		}
		entry.UserName = userName.String
		date, err := parseTime(dateStr)
		if err != nil {
			return nil, &PersistenceError{Op: "parse log date", Err: err}
		}
		entry.Date = date
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate log entries", Err: err}
	}
	return result, nil
}

func (l *sqlLogs) Append(entry LogEntry) (LogEntry, error) {
	res, err := l.store.exec(
		`INSERT INTO audit_log (user_id, user_name, description, date) VALUES (?, ?, ?, ?)`,
		entry.UserID, entry.UserName, entry.Description, formatTime(entry.Date),
	)
	if err != nil {
		return LogEntry{}, err
	}
	id, _ := res.LastInsertId()
	entry.ID = int(id)
	return entry, nil
}
