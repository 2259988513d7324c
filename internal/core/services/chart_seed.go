package services

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed chart_default.yaml
var defaultChartYAML []byte

// SeedAccount is one account definition of a chart seed file.
type SeedAccount struct {
	Code          string `yaml:"code"`
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	DisplayAs     string `yaml:"display_as"`
	Category      string `yaml:"category"`
	Subcategory   string `yaml:"subcategory"`
	Parent        string `yaml:"parent"`
	BudgetMonthly string `yaml:"budget_monthly"`
	BudgetAnnual  string `yaml:"budget_annual"`
}

// ChartSeed is the chart of accounts created by SeedDefaultChart.
type ChartSeed struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// DefaultChartSeed returns the built-in chart.
func DefaultChartSeed() (*ChartSeed, error) {
	return ParseChartSeed(defaultChartYAML)
}

// LoadChartSeed reads a chart seed from a YAML file.
func LoadChartSeed(path string) (*ChartSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart seed file: %w", err)
	}
	return ParseChartSeed(data)
}

// ParseChartSeed parses and validates a chart seed document.
func ParseChartSeed(data []byte) (*ChartSeed, error) {
	var seed ChartSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse chart seed YAML: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (c *ChartSeed) validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("chart seed has no accounts")
	}
	codes := make(map[string]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.Code == "" || a.Name == "" {
			return fmt.Errorf("chart seed account needs a code and a name (code %q)", a.Code)
		}
		if codes[a.Code] {
			return fmt.Errorf("chart seed has duplicate code %s", a.Code)
		}
		codes[a.Code] = true
		if !domain.AccountType(a.Type).IsValid() {
			return fmt.Errorf("chart seed account %s has invalid type %q", a.Code, a.Type)
		}
		if a.DisplayAs != "" && !domain.DisplayAs(a.DisplayAs).IsValid() {
			return fmt.Errorf("chart seed account %s has invalid display_as %q", a.Code, a.DisplayAs)
		}
		for _, amount := range []string{a.BudgetMonthly, a.BudgetAnnual} {
			if amount == "" {
				continue
			}
			if _, err := decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("chart seed account %s has invalid budget %q: %w", a.Code, amount, err)
			}
		}
	}
	for _, a := range c.Accounts {
		if a.Parent != "" && !codes[a.Parent] {
			return fmt.Errorf("chart seed account %s references unknown parent %s", a.Code, a.Parent)
		}
	}
	return nil
}

// toAccounts materializes the seed for one tenant in file order.
func (c *ChartSeed) toAccounts(tenantID, operatorID string, now time.Time) []domain.Account {
	out := make([]domain.Account, 0, len(c.Accounts))
	for _, s := range c.Accounts {
		account := domain.Account{
			TenantID:        tenantID,
			Code:            s.Code,
			AccountName:     s.Name,
			CategoryName:    s.Category,
			SubcategoryName: s.Subcategory,
			Type:            domain.AccountType(s.Type),
			DisplayAs:       domain.DisplayAs(s.DisplayAs),
			BudgetMonthly:   decimal.Zero,
			BudgetAnnual:    decimal.Zero,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     operatorID,
				LastUpdatedAt: now,
				LastUpdatedBy: operatorID,
			},
		}
		if account.DisplayAs == "" {
			account.DisplayAs = domain.DisplayHidden
		}
		if s.Parent != "" {
			account.ParentCode = domain.StrPtr(s.Parent)
		}
		if s.BudgetMonthly != "" {
			account.BudgetMonthly = decimal.RequireFromString(s.BudgetMonthly)
		}
		if s.BudgetAnnual != "" {
			account.BudgetAnnual = decimal.RequireFromString(s.BudgetAnnual)
		}
		account.ApplyDerivedFields()
		out = append(out, account)
	}
	return out
}
