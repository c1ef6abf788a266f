package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo         *ProjectRepo
	heroSlotRepo        *HeroSlotRepo
	serviceCategoryRepo *ServiceCategoryRepo
	contactRepo         *ContactRepo
	bookingRepo         *BookingRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:         NewProjectRepo(db),
		heroSlotRepo:        NewHeroSlotRepo(db),
		serviceCategoryRepo: NewServiceCategoryRepo(db),
		contactRepo:         NewContactRepo(db),
		bookingRepo:         NewBookingRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) HeroSlotRepo() *HeroSlotRepo {
	return d.heroSlotRepo
}

func (d Database) ServiceCategoryRepo() *ServiceCategoryRepo {
	return d.serviceCategoryRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) BookingRepo() *BookingRepo {
	return d.bookingRepo
}
