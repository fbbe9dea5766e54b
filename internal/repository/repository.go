package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/finquest/finquest-api/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finquest.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM finquest.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveProfile upserts the canonical financial profile for a user. Profiles
// are stored as a single JSONB document; engine-derived results are never
// persisted, they are recomputed on every request.
func (r *Repository) SaveProfile(userID int64, profile models.FinancialProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `
		INSERT INTO finquest.profiles (user_id, data, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Exec(query, userID, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// FindProfileByUserID retrieves a user's financial profile
func (r *Repository) FindProfileByUserID(userID int64) (models.FinancialProfile, error) {
	var data []byte
	query := `SELECT data FROM finquest.profiles WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return models.FinancialProfile{}, fmt.Errorf("profile not found")
	}
	if err != nil {
		return models.FinancialProfile{}, fmt.Errorf("failed to find profile: %w", err)
	}

	var profile models.FinancialProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.FinancialProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// SaveGoal upserts the goal document for a user
func (r *Repository) SaveGoal(goal *models.Goal) error {
	query := `
		INSERT INTO finquest.goals (
			user_id, monthly_income, monthly_expenses, monthly_investment,
			expected_return_rate, short_term_title, short_term_target,
			short_term_deadline, long_term_title, long_term_target,
			long_term_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET
			monthly_income = EXCLUDED.monthly_income,
			monthly_expenses = EXCLUDED.monthly_expenses,
			monthly_investment = EXCLUDED.monthly_investment,
			expected_return_rate = EXCLUDED.expected_return_rate,
			short_term_title = EXCLUDED.short_term_title,
			short_term_target = EXCLUDED.short_term_target,
			short_term_deadline = EXCLUDED.short_term_deadline,
			long_term_title = EXCLUDED.long_term_title,
			long_term_target = EXCLUDED.long_term_target,
			long_term_deadline = EXCLUDED.long_term_deadline,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		goal.UserID, goal.MonthlyIncome, goal.MonthlyExpenses, goal.MonthlyInvestment,
		goal.ExpectedReturnRate, goal.ShortTermGoalTitle, goal.ShortTermTarget,
		goal.ShortTermDeadline, goal.LongTermGoalTitle, goal.LongTermTarget,
		goal.LongTermDeadline).
		Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// FindGoalByUserID retrieves a user's goal document
func (r *Repository) FindGoalByUserID(userID int64) (*models.Goal, error) {
	goal := &models.Goal{}
	query := `
		SELECT id, user_id, monthly_income, monthly_expenses, monthly_investment,
			expected_return_rate, short_term_title, short_term_target,
			short_term_deadline, long_term_title, long_term_target,
			long_term_deadline, created_at, updated_at
		FROM finquest.goals
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(
		&goal.ID, &goal.UserID, &goal.MonthlyIncome, &goal.MonthlyExpenses,
		&goal.MonthlyInvestment, &goal.ExpectedReturnRate, &goal.ShortTermGoalTitle,
		&goal.ShortTermTarget, &goal.ShortTermDeadline, &goal.LongTermGoalTitle,
		&goal.LongTermTarget, &goal.LongTermDeadline, &goal.CreatedAt, &goal.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("goal not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return goal, nil
}

// GoalWithEmail pairs a goal with its owner's contact details for the
// reminder sweep.
type GoalWithEmail struct {
	Goal     models.Goal
	Email    string
	Username string
}

// ListGoalsWithEmails returns every stored goal joined with its owner
func (r *Repository) ListGoalsWithEmails() ([]GoalWithEmail, error) {
	query := `
		SELECT g.id, g.user_id, g.monthly_income, g.monthly_expenses,
			g.monthly_investment, g.expected_return_rate, g.short_term_title,
			g.short_term_target, g.short_term_deadline, g.long_term_title,
			g.long_term_target, g.long_term_deadline, g.created_at, g.updated_at,
			u.email, u.username
		FROM finquest.goals g
		JOIN finquest.users u ON u.id = g.user_id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var result []GoalWithEmail
	for rows.Next() {
		var item GoalWithEmail
		g := &item.Goal
		err := rows.Scan(
			&g.ID, &g.UserID, &g.MonthlyIncome, &g.MonthlyExpenses,
			&g.MonthlyInvestment, &g.ExpectedReturnRate, &g.ShortTermGoalTitle,
			&g.ShortTermTarget, &g.ShortTermDeadline, &g.LongTermGoalTitle,
			&g.LongTermTarget, &g.LongTermDeadline, &g.CreatedAt, &g.UpdatedAt,
			&item.Email, &item.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return result, nil
}
