package jokes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

type (
	// Store keeps users and their jokes in a single sqlite database.
	//
	// It is the only serialization point of the whole application,
	// username uniqueness is enforced here by a unique index rather
	// than by whatever pre-checks callers might run.
	Store struct {
		db *sql.DB
	}

	User struct {
		ID           string
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}

	Joke struct {
		ID        string
		Name      string
		Content   string
		OwnerID   string
		CreatedAt time.Time
	}
)

func openDatabase(ctx context.Context, file string) (*sql.DB, error) {
	connstr := fmt.Sprintf("file:%v?_journal=wal&_foreign_keys=on&mode=rwc", file)
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", file, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to ping database %v, cause %w", file, err)
	}
	return conn, nil
}

// Open loads the joke database at the given file, creating the
// schema when it is missing.
func Open(ctx context.Context, file string) (*Store, error) {
	conn, err := openDatabase(ctx, file)
	if err != nil {
		return nil, err
	}
	s := &Store{db: conn}
	err = s.init(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to init database %v, cause %w", file, err)
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	for _, cmd := range []string{
		`create table if not exists users(
			user_id text not null primary key,
			username text not null unique,
			password_hash text not null,
			created_at timestamp not null
		)`,
		`create table if not exists jokes(
			joke_id text not null primary key,
			name text not null,
			content text not null,
			owner_id text not null,
			created_at timestamp not null,
			foreign key (owner_id) references users(user_id)
		)`,
		`create index if not exists idx_jokes_created_at
			on jokes(created_at)
		`,
	} {
		_, err := s.db.ExecContext(ctx, cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateUser inserts a new user, the password must already be hashed.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `insert into users (user_id, username, password_hash, created_at) values (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return nil, UsernameTaken{Username: username}
	} else if err != nil {
		return nil, fmt.Errorf("unable to create user %v, cause %w", username, err)
	}
	return &u, nil
}

// FindUserByUsername returns the user including the password hash,
// callers that only render user data should prefer GetUserByID.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select user_id, username, password_hash, created_at from users where username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, UserNotFound{Username: username}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load user %v, cause %w", username, err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `select user_id, username, created_at from users where user_id = ?`, id).
		Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, UserNotFound{Username: id}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load user %v, cause %w", id, err)
	}
	return &u, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `select count(*) from users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unable to count users, cause %w", err)
	}
	return count, nil
}

func (s *Store) CreateJoke(ctx context.Context, ownerID, name, content string) (*Joke, error) {
	j := Joke{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `insert into jokes (joke_id, name, content, owner_id, created_at) values (?, ?, ?, ?, ?)`,
		j.ID, j.Name, j.Content, j.OwnerID, j.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unable to create joke %v, cause %w", name, err)
	}
	return &j, nil
}

func (s *Store) GetJoke(ctx context.Context, id string) (*Joke, error) {
	var j Joke
	err := s.db.QueryRowContext(ctx, `select joke_id, name, content, owner_id, created_at from jokes where joke_id = ?`, id).
		Scan(&j.ID, &j.Name, &j.Content, &j.OwnerID, &j.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, JokeNotFound{ID: id}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load joke %v, cause %w", id, err)
	}
	return &j, nil
}

// ListJokes returns all jokes, newest first.
func (s *Store) ListJokes(ctx context.Context) ([]Joke, error) {
	rows, err := s.db.QueryContext(ctx, `select joke_id, name, content, owner_id, created_at from jokes order by created_at desc, joke_id desc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list jokes, cause %w", err)
	}
	defer rows.Close()
	var out []Joke
	for rows.Next() {
		var j Joke
		err = rows.Scan(&j.ID, &j.Name, &j.Content, &j.OwnerID, &j.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("unable to list jokes, cause %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
