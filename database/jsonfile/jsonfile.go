// Package jsonfile реализует файловый бэкенд хранилища: обе коллекции
// лежат в одном JSON-документе на диске, каждая мутация немедленно
// перезаписывает файл целиком.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/formlab/questionnaire/database"
	"github.com/formlab/questionnaire/internal/domain/model"
)

// document описывает структуру JSON-файла
type document struct {
	Answers   []model.Answer   `json:"answers"`
	Questions []model.Question `json:"questions"`
}

// DB представляет файловое хранилище.
// Mutex удерживается на время всей операции read-modify-write, поэтому
// конкурентные запросы к одному документу не теряют обновлений.
// Окно между каскадной чисткой связей и физическим удалением ответа
// при падении процесса может оставить висячую ссылку; это принятое
// ограничение файлового бэкенда, реляционный бэкенд закрывает его
// каскадным внешним ключом.
type DB struct {
	filename string
	mu       sync.Mutex
}

// Open открывает файловое хранилище. Если файл не существует,
// он создается с пустым документом.
func Open(filename string) (*DB, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
		}
	}
	db := &DB{filename: filename}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if err := db.save(&document{
			Answers:   []model.Answer{},
			Questions: []model.Question{},
		}); err != nil {
			return nil, err
		}
	} else if _, err := db.load(); err != nil {
		return nil, err
	}
	return db, nil
}

// Stores возвращает хранилища сущностей поверх этого файла
func (db *DB) Stores() database.Stores {
	return database.Stores{
		Answers:   &AnswerStore{db: db},
		Questions: &QuestionStore{db: db},
	}
}

// load считывает и разбирает документ. Вызывается под mu.
func (db *DB) load() (*document, error) {
	data, err := os.ReadFile(db.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", db.filename, err)
	}
	doc := &document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return doc, nil
}

// save сериализует документ и записывает его на диск. Вызывается под mu.
func (db *DB) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(db.filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", db.filename, err)
	}
	return nil
}

// view выполняет операцию чтения под блокировкой
func (db *DB) view(fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	doc, err := db.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update выполняет операцию read-modify-write под блокировкой.
// Документ записывается, только если fn вернула changed=true.
func (db *DB) update(fn func(doc *document) (bool, error)) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	doc, err := db.load()
	if err != nil {
		return err
	}
	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return db.save(doc)
}
