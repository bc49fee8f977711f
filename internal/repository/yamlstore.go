package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/camt-import/internal/logging"
	"fjacquet/camt-import/internal/models"
)

// File names inside the data directory.
const (
	journalsFile   = "journals.yaml"
	currenciesFile = "currencies.yaml"
	companiesFile  = "companies.yaml"
	statementsFile = "statements.yaml"
)

// Company carries the per-company defaults the importer needs.
type Company struct {
	ID           int64  `yaml:"id"`
	CurrencyCode string `yaml:"currency"`
}

// persistedRecord is a stored statement together with its assigned id.
type persistedRecord struct {
	ID        int64                     `yaml:"id"`
	Statement models.PersistedStatement `yaml:"statement"`
}

// YAMLStore is a file-backed Repository. Journals, currencies and companies
// are read from YAML files in a data directory; persisted statements are
// appended to statements.yaml so duplicate detection holds across runs.
type YAMLStore struct {
	dataDir string
	log     logging.Logger

	journals   map[int64]models.Journal
	currencies map[string]models.Currency
	companies  map[int64]Company
	records    []persistedRecord
}

// NewYAMLStore loads the registry files from dataDir. Missing registry
// files are fatal; a missing statements file means nothing was imported yet.
func NewYAMLStore(dataDir string, log logging.Logger) (*YAMLStore, error) {
	s := &YAMLStore{
		dataDir:    dataDir,
		log:        log,
		journals:   make(map[int64]models.Journal),
		currencies: make(map[string]models.Currency),
		companies:  make(map[int64]Company),
	}

	var journals []models.Journal
	if err := s.loadFile(journalsFile, &journals, true); err != nil {
		return nil, err
	}
	for _, j := range journals {
		s.journals[j.ID] = j
	}

	var currencies []models.Currency
	if err := s.loadFile(currenciesFile, &currencies, true); err != nil {
		return nil, err
	}
	for _, c := range currencies {
		s.currencies[c.Code] = c
	}

	var companies []Company
	if err := s.loadFile(companiesFile, &companies, true); err != nil {
		return nil, err
	}
	for _, c := range companies {
		s.companies[c.ID] = c
	}

	if err := s.loadFile(statementsFile, &s.records, false); err != nil {
		return nil, err
	}

	log.Info("Loaded repository data",
		logging.F("dir", dataDir),
		logging.F("journals", len(s.journals)),
		logging.F("currencies", len(s.currencies)),
		logging.F("statements", len(s.records)))
	return s, nil
}

// loadFile unmarshals one YAML file from the data directory into out.
func (s *YAMLStore) loadFile(name string, out interface{}, required bool) error {
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}

// Journal returns the destination journal configuration.
func (s *YAMLStore) Journal(journalID int64) (models.Journal, error) {
	journal, ok := s.journals[journalID]
	if !ok {
		return models.Journal{}, &NotFoundError{Entity: "journal", ID: journalID}
	}
	return journal, nil
}

// CompanyCurrency returns the fallback currency code of a company.
func (s *YAMLStore) CompanyCurrency(companyID int64) (string, error) {
	company, ok := s.companies[companyID]
	if !ok {
		return "", &NotFoundError{Entity: "company", ID: companyID}
	}
	return company.CurrencyCode, nil
}

// LookupCurrency resolves an ISO-4217 code against the registry.
func (s *YAMLStore) LookupCurrency(code string) (models.Currency, bool, error) {
	currency, ok := s.currencies[code]
	return currency, ok, nil
}

// StatementNameExists reports whether a statement name was already persisted
// in the journal.
func (s *YAMLStore) StatementNameExists(journalID int64, name string) (bool, error) {
	for _, record := range s.records {
		if record.Statement.JournalID == journalID && record.Statement.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateStatements persists all statements in one batch. The statements file
// is rewritten once at the end, so a marshalling failure leaves the store
// untouched.
func (s *YAMLStore) CreateStatements(statements []models.PersistedStatement) ([]int64, error) {
	nextID := int64(1)
	for _, record := range s.records {
		if record.ID >= nextID {
			nextID = record.ID + 1
		}
	}

	appended := make([]persistedRecord, 0, len(statements))
	ids := make([]int64, 0, len(statements))
	for _, statement := range statements {
		appended = append(appended, persistedRecord{ID: nextID, Statement: statement})
		ids = append(ids, nextID)
		nextID++
	}

	all := append(append([]persistedRecord{}, s.records...), appended...)
	data, err := yaml.Marshal(all)
	if err != nil {
		return nil, fmt.Errorf("error marshaling statements: %w", err)
	}

	if err := os.MkdirAll(s.dataDir, 0750); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	path := filepath.Join(s.dataDir, statementsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error writing statements file: %w", err)
	}

	s.records = all
	s.log.Info("Persisted statements",
		logging.F("count", len(appended)),
		logging.F("file", path))
	return ids, nil
}
