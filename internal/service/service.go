package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finquest/finquest-api/internal/cache"
	"github.com/finquest/finquest-api/internal/config"
	"github.com/finquest/finquest-api/internal/engine"
	"github.com/finquest/finquest-api/internal/integrations/advisor"
	"github.com/finquest/finquest-api/internal/models"
	"github.com/finquest/finquest-api/internal/repository"
	"github.com/finquest/finquest-api/internal/utils"
	emailutil "github.com/finquest/finquest-api/internal/utils/email"
)

// ErrNoIncomeData is returned when a profile's income sources sum to zero.
// The engine itself degrades to zero ratios; the analysis endpoint treats a
// zero-income profile as a client error instead.
var ErrNoIncomeData = errors.New("no income data provided")

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	advisor  *advisor.Client
	sessions *cache.SessionCache
	mailer   *emailutil.Sender
	now      func() time.Time
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, adv *advisor.Client, sessions *cache.SessionCache, mailer *emailutil.Sender) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		config:   cfg,
		advisor:  adv,
		sessions: sessions,
		mailer:   mailer,
		now:      time.Now,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// SaveProfile stores the canonical profile for the user
func (s *Service) SaveProfile(userID int64, profile models.FinancialProfile) error {
	if err := s.repo.SaveProfile(userID, profile); err != nil {
		return err
	}
	s.log.Infof("Profile saved for user %d", userID)
	return nil
}

// GetProfile loads the canonical profile for the user
func (s *Service) GetProfile(userID int64) (models.FinancialProfile, error) {
	return s.repo.FindProfileByUserID(userID)
}

// Assess runs the engine's full health assessment for a profile.
func (s *Service) Assess(profile models.FinancialProfile) engine.HealthAssessment {
	return engine.BuildAssessment(profile)
}

// Project compounds the profile's investments and debts over the horizon,
// one series per scenario. A non-positive horizon falls back to the
// configured default.
func (s *Service) Project(profile models.FinancialProfile, years int) []engine.ProjectionSeries {
	if years <= 0 {
		years = s.config.ProjectionYears
	}
	return engine.ProjectWealth(profile.Investments, profile.Debts, years, nil)
}

// AnalyzeProfile produces the full analysis document for a profile. It asks
// the external advisor first; on any transport or format error it assembles
// the same document locally from the engine, so the caller always receives
// a complete deterministic result.
func (s *Service) AnalyzeProfile(ctx context.Context, userID int64, profile models.FinancialProfile) (*models.AnalysisResponse, error) {
	totals := engine.ComputeTotals(profile)
	if totals.IncomeMissing {
		return nil, ErrNoIncomeData
	}

	analysis, err := s.advisor.Analyze(ctx, profile)
	if err != nil {
		if !errors.Is(err, advisor.ErrNotConfigured) {
			s.log.Warnf("Advisor unavailable, serving local analysis: %v", err)
		}
		analysis = s.buildLocalAnalysis(profile)
	}

	if s.sessions != nil {
		s.sessions.SetAnalysis(userID, analysis)
	}
	return analysis, nil
}

// buildLocalAnalysis assembles the analysis contract from the engine alone.
func (s *Service) buildLocalAnalysis(profile models.FinancialProfile) *models.AnalysisResponse {
	assessment := engine.BuildAssessment(profile)
	t := assessment.Totals
	m := assessment.Metrics

	surplus := t.TotalIncome - t.TotalExpenses
	annualIncome := t.TotalIncome * 12

	resp := &models.AnalysisResponse{
		OverallScore: m.HealthScore,
		Audit: []models.AuditEntry{
			savingsAudit(m),
			debtAudit(m),
			emergencyFundAudit(t),
			investmentAudit(t, annualIncome),
		},
		CashflowAnalysis: fmt.Sprintf(
			"Monthly income %s against expenses %s leaves %s (savings rate %.1f%%).",
			utils.FormatINR(t.TotalIncome), utils.FormatINR(t.TotalExpenses),
			utils.FormatINR(surplus), m.SavingsRatePct),
		DebtOverview: fmt.Sprintf(
			"Outstanding debt %s, %.1f%% of annual income.",
			utils.FormatINR(t.TotalDebt), m.DebtToIncomeRatioPct),
		WealthProjection: s.buildWealthProjection(profile),
		RiskAssessment:   riskAssessment(m, profile.Age),
	}
	return resp
}

// buildWealthProjection flattens the engine's series into the per-scenario
// arrays the clients chart, with calendar-year labels.
func (s *Service) buildWealthProjection(profile models.FinancialProfile) models.WealthProjection {
	years := s.config.ProjectionYears
	series := engine.ProjectWealth(profile.Investments, profile.Debts, years, nil)

	startYear := s.now().Year()
	wp := models.WealthProjection{
		Years:        make([]string, 0, years+1),
		Conservative: make([]float64, 0, years+1),
		Moderate:     make([]float64, 0, years+1),
		Aggressive:   make([]float64, 0, years+1),
	}
	for i := 0; i <= years; i++ {
		wp.Years = append(wp.Years, fmt.Sprintf("%d", startYear+i))
	}
	for _, sr := range series {
		for _, p := range sr.Points {
			switch sr.Scenario {
			case engine.ScenarioConservative:
				wp.Conservative = append(wp.Conservative, p.ProjectedWealth)
			case engine.ScenarioModerate:
				wp.Moderate = append(wp.Moderate, p.ProjectedWealth)
			case engine.ScenarioAggressive:
				wp.Aggressive = append(wp.Aggressive, p.ProjectedWealth)
			}
		}
	}
	return wp
}

// GoalFeasibilityResult pairs the feasibility of both stored targets.
type GoalFeasibilityResult struct {
	Goal      *models.Goal           `json:"goal"`
	ShortTerm engine.GoalFeasibility `json:"short_term"`
	LongTerm  engine.GoalFeasibility `json:"long_term"`
}

// SaveGoal upserts the user's goal document
func (s *Service) SaveGoal(userID int64, goal *models.Goal) error {
	goal.UserID = userID
	if err := s.repo.SaveGoal(goal); err != nil {
		return err
	}
	s.log.Infof("Goal saved for user %d", userID)
	return nil
}

// GetGoal loads the user's goal document
func (s *Service) GetGoal(userID int64) (*models.Goal, error) {
	return s.repo.FindGoalByUserID(userID)
}

// EvaluateGoals computes feasibility for both stored targets against the
// planned monthly investment.
func (s *Service) EvaluateGoals(userID int64) (*GoalFeasibilityResult, error) {
	goal, err := s.repo.FindGoalByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &GoalFeasibilityResult{
		Goal:      goal,
		ShortTerm: engine.EvaluateGoalFeasibility(goal.ShortTermTarget, goal.MonthlyInvestment, goal.ShortTermDeadline, now),
		LongTerm:  engine.EvaluateGoalFeasibility(goal.LongTermTarget, goal.MonthlyInvestment, goal.LongTermDeadline, now),
	}, nil
}

// NotifyOffTrackGoals emails every user whose short-term goal is running
// behind pace. Run daily by the scheduler.
func (s *Service) NotifyOffTrackGoals() {
	items, err := s.repo.ListGoalsWithEmails()
	if err != nil {
		s.log.Errorf("Goal reminder sweep failed: %v", err)
		return
	}

	now := s.now()
	sent := 0
	for _, item := range items {
		f := engine.EvaluateGoalFeasibility(item.Goal.ShortTermTarget, item.Goal.MonthlyInvestment, item.Goal.ShortTermDeadline, now)
		if f.Verdict != engine.VerdictShortfall {
			continue
		}
		err := s.mailer.SendGoalReminder(
			item.Email, item.Username, item.Goal.ShortTermGoalTitle,
			item.Goal.ShortTermDeadline, f.RequiredMonthlyContribution, item.Goal.MonthlyInvestment)
		if err != nil {
			continue // already logged by the sender
		}
		sent++
	}
	s.log.Infof("Goal reminder sweep: %d/%d goals off track notified", sent, len(items))
}

// SweepSessions evicts expired sessions. Run hourly by the scheduler.
func (s *Service) SweepSessions() {
	evicted := s.sessions.Sweep()
	if evicted > 0 {
		s.log.Infof("Session sweep evicted %d entries", evicted)
	}
}
