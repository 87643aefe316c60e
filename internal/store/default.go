package store

import (
	"database/sql"
	"log"

	"git.lost.host/meutraa/chase/internal/config"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultStore emulates the byte addressable eeprom in a sqlite database,
// so the record format and write-if-changed discipline run against real
// nonvolatile storage.
type DefaultStore struct {
	db *sql.DB
}

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", *config.Eeprom)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists eeprom
	  (
		  addr integer not null primary key,
		  value integer not null
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultStore) Load() uint16 {
	var record [recordSize]byte
	for i := range record {
		b, ok := s.readByte(config.EepromHighScoreAddr + i)
		if !ok {
			return 0
		}
		record[i] = b
	}
	return decode(record)
}

func (s *DefaultStore) Save(value uint16) {
	record := encode(value)
	for i, b := range record {
		addr := config.EepromHighScoreAddr + i
		if current, ok := s.readByte(addr); ok && current == b {
			continue
		}
		if _, err := s.db.Exec("insert or replace into eeprom(addr, value) values(?, ?)", addr, int(b)); nil != err {
			log.Println("unable to write eeprom byte", err)
			return
		}
	}
}

func (s *DefaultStore) readByte(addr int) (byte, bool) {
	var value int
	err := s.db.QueryRow("select value from eeprom where addr = ?", addr).Scan(&value)
	if nil != err {
		return 0, false
	}
	return byte(value), true
}
