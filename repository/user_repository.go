package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"EchoFM/model"

	"github.com/google/uuid"
)

// ErrDuplicateUser is returned when a username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already exists")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user *model.User) (string, error)
	GetUserByID(id string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

// CreateUser adds a new user to the database and returns the assigned ID.
func (r *mysqlUserRepository) CreateUser(user *model.User) (string, error) {
	query := "INSERT INTO users (id, username, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return "", fmt.Errorf("failed to prepare create user statement: %w", err)
	}
	defer stmt.Close()

	id := uuid.NewString()
	now := time.Now()
	_, err = stmt.Exec(id, user.Username, user.Email, user.PasswordHash, now, now)
	if err != nil {
		// MySQL duplicate key errors carry error number 1062.
		if strings.Contains(err.Error(), "Duplicate entry") {
			return "", ErrDuplicateUser
		}
		return "", fmt.Errorf("failed to execute create user statement: %w", err)
	}

	user.ID = id
	return id, nil
}

// GetUserByID retrieves a user by their ID. Returns (nil, nil) when not found.
func (r *mysqlUserRepository) GetUserByID(id string) (*model.User, error) {
	return r.getUserBy("id", id)
}

// GetUserByUsername retrieves a user by their username.
func (r *mysqlUserRepository) GetUserByUsername(username string) (*model.User, error) {
	return r.getUserBy("username", username)
}

// GetUserByEmail retrieves a user by their email address.
func (r *mysqlUserRepository) GetUserByEmail(email string) (*model.User, error) {
	return r.getUserBy("email", email)
}

func (r *mysqlUserRepository) getUserBy(column, value string) (*model.User, error) {
	query := "SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE " + column + " = ?"
	row := r.db.QueryRow(query, value)
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for %s %s: %w", column, value, err)
	}
	return user, nil
}
