// /home/wahid/go/src/github.com/wahid/muezzin/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 02. 2026 by Wahid Haddad
// (c) 2026 Wahid Haddad
// Time-stamp: <2026-08-19 20:48:27 wahid>

package database

import (
	"sync"

	"github.com/wahid/muezzin/common"
)

// Pool is a pool of database connections.
type Pool struct {
	lock sync.Mutex
	cond *sync.Cond
	pool []*Database
}

// NewPool creates a Pool of database connections of the given size.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			pool: make([]*Database, 0, cnt),
		}
	)

	pool.cond = sync.NewCond(&pool.lock)

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(common.DbPath); err != nil {
			for _, d := range pool.pool {
				d.Close() // nolint: errcheck
			}
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a database connection from the pool, blocking until one
// becomes available if the pool is currently empty.
func (p *Pool) Get() *Database {
	p.lock.Lock()
	defer p.lock.Unlock()

	for len(p.pool) == 0 {
		p.cond.Wait()
	}

	var db = p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]

	return db
} // func (p *Pool) Get() *Database

// GetNoWait returns a database connection if one is available
// immediately, nil otherwise.
func (p *Pool) GetNoWait() *Database {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.pool) == 0 {
		return nil
	}

	var db = p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]

	return db
} // func (p *Pool) GetNoWait() *Database

// Put returns a database connection to the pool.
func (p *Pool) Put(db *Database) {
	p.lock.Lock()
	p.pool = append(p.pool, db)
	p.cond.Signal()
	p.lock.Unlock()
} // func (p *Pool) Put(db *Database)

// Close closes all database connections currently idling in the pool.
func (p *Pool) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var err error

	for _, db := range p.pool {
		if e := db.Close(); e != nil && err == nil {
			err = e
		}
	}

	p.pool = p.pool[:0]

	return err
} // func (p *Pool) Close() error
