package catalog

import (
	"github.com/ovisslabs/oviss-backend/pkg/models"
)

// Provider exposes the fixed reference data: services, outlets, stylists and
// the bookable time slots. Loaded once at process start, immutable after.
type Provider interface {
	Services() []models.Service
	Outlets() []models.Outlet
	Stylists() []models.Stylist
	TimeSlots() []string
	StylistByID(id string) (models.Stylist, bool)
	OutletByID(id string) (models.Outlet, bool)
	ServiceByName(name string) (models.Service, bool)
}

type provider struct {
	services  []models.Service
	outlets   []models.Outlet
	stylists  []models.Stylist
	timeSlots []string

	stylistsByID   map[string]models.Stylist
	outletsByID    map[string]models.Outlet
	servicesByName map[string]models.Service
}

// New builds a provider over the given reference data.
func New(services []models.Service, outlets []models.Outlet, stylists []models.Stylist, timeSlots []string) Provider {
	p := &provider{
		services:       services,
		outlets:        outlets,
		stylists:       stylists,
		timeSlots:      timeSlots,
		stylistsByID:   make(map[string]models.Stylist, len(stylists)),
		outletsByID:    make(map[string]models.Outlet, len(outlets)),
		servicesByName: make(map[string]models.Service, len(services)),
	}
	for _, s := range stylists {
		p.stylistsByID[s.ID] = s
	}
	for _, o := range outlets {
		p.outletsByID[o.ID] = o
	}
	for _, s := range services {
		p.servicesByName[s.Name] = s
	}
	return p
}

// Default returns the provider seeded with the salon's shipped catalog.
func Default() Provider {
	return New(defaultServices, defaultOutlets, defaultStylists, defaultTimeSlots)
}

func (p *provider) Services() []models.Service {
	return append([]models.Service(nil), p.services...)
}

func (p *provider) Outlets() []models.Outlet {
	return append([]models.Outlet(nil), p.outlets...)
}

func (p *provider) Stylists() []models.Stylist {
	return append([]models.Stylist(nil), p.stylists...)
}

func (p *provider) TimeSlots() []string {
	return append([]string(nil), p.timeSlots...)
}

func (p *provider) StylistByID(id string) (models.Stylist, bool) {
	s, ok := p.stylistsByID[id]
	return s, ok
}

func (p *provider) OutletByID(id string) (models.Outlet, bool) {
	o, ok := p.outletsByID[id]
	return o, ok
}

func (p *provider) ServiceByName(name string) (models.Service, bool) {
	s, ok := p.servicesByName[name]
	return s, ok
}
