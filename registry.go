// SPDX-License-Identifier: GPL-3.0-or-later

package ioc

import (
	"net"
	"sync"
)

// registry is the process-wide, lock-protected owner of every Service
// and Link record. External handles are opaque IDs; callers never see
// a *Service or *Link directly except through the API functions in
// this package, which resolve through here first.
//
// Grounded on the RWMutex + plain-map subscriber pattern used for the
// event-bus reference implementation in the example pack: short
// critical sections for lookup (RLock), exclusive sections only around
// mutation (Lock).
type registry struct {
	mu       sync.RWMutex
	services map[ServiceID]*serviceRecord
	links    map[LinkID]*Link
	uris     map[string]ServiceID

	hub *autoLinkHub
}

type serviceRecord struct {
	ID       ServiceID
	URI      ServiceURI
	Roles    []Role
	AutoAccept bool
	Broadcast  bool

	binder   Binder
	listener any // transport-specific listener resource, opaque here

	acceptQueue chan net.Conn

	// autoAcceptCancel stops the background accept loop OnlineService
	// started for this service when AutoAccept is set; nil otherwise.
	autoAcceptCancel func()

	cmdExecCb   CbExecCmd_F
	cmdExecData any
	datRecvCb   CbRecvDat_F
	datRecvData any

	links map[LinkID]*Link
}

func newRegistry(cfg *Config) *registry {
	return &registry{
		services: make(map[ServiceID]*serviceRecord),
		links:    make(map[LinkID]*Link),
		uris:     make(map[string]ServiceID),
		hub:      newAutoLinkHub(cfg),
	}
}

// registerService inserts svc, rejecting a duplicate URI with
// [ResultPortInUse] (§3.4 ID-uniqueness invariant: no two live services
// share a URI).
func (r *registry) registerService(svc *serviceRecord) Result {
	if testShouldFailAlloc() {
		return ResultPosixEnomem
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.uris[svc.URI.Key()]; exists {
		return ResultPortInUse
	}
	r.services[svc.ID] = svc
	r.uris[svc.URI.Key()] = svc.ID
	return ResultSuccess
}

func (r *registry) unregisterService(id ServiceID) (*serviceRecord, Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, ResultNotExistService
	}
	delete(r.services, id)
	delete(r.uris, svc.URI.Key())
	return svc, ResultSuccess
}

func (r *registry) resolveServiceByURI(key string) (*serviceRecord, Result) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.uris[key]
	if !ok {
		return nil, ResultNotExistService
	}
	return r.services[id], ResultSuccess
}

func (r *registry) resolveService(id ServiceID) (*serviceRecord, Result) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[id]
	if !ok {
		return nil, ResultNotExistService
	}
	return svc, ResultSuccess
}

func (r *registry) registerLink(link *Link) Result {
	if testShouldFailAlloc() {
		return ResultPosixEnomem
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.ID] = link
	if svc, ok := r.services[link.SrvID]; ok {
		svc.links[link.ID] = link
	}
	return ResultSuccess
}

func (r *registry) unregisterLink(id LinkID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[id]
	if !ok {
		return
	}
	delete(r.links, id)
	if svc, ok := r.services[link.SrvID]; ok {
		delete(svc.links, id)
	}
}

// resolveLink returns [ResultNotExistLink] for an unknown or already
// closed LinkID, per the registry's ownership discipline.
func (r *registry) resolveLink(id LinkID) (*Link, Result) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	link, ok := r.links[id]
	if !ok {
		return nil, ResultNotExistLink
	}
	return link, ResultSuccess
}

// serviceCount and linkCount back the leak-detection tests §4.5
// requires be exact across every creation/destruction path.
func (r *registry) serviceCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}

func (r *registry) linkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}
