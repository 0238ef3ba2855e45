package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

const DemoRestaurantSlug = "zen-acham"

type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

type seedOption struct {
	name  string
	price string
}

type seedModifier struct {
	name     string
	kind     models.ModifierType
	required bool
	options  []seedOption
}

type seedItem struct {
	name      string
	nameAr    string
	price     string
	modifiers []seedModifier
}

type seedCategory struct {
	name   string
	nameAr string
	items  []seedItem
}

var sandwichModifiers = []seedModifier{
	{
		name: "Sauce",
		kind: models.ModifierSauce,
		options: []seedOption{
			{"Sauce blanche", "0"},
			{"Sauce piquante", "0"},
			{"Tahina", "0"},
		},
	},
	{
		name: "Suppléments",
		kind: models.ModifierSupplement,
		options: []seedOption{
			{"Fromage", "10"},
			{"Frites", "8"},
		},
	},
}

var demoMenu = []seedCategory{
	{
		name: "Entrées froides", nameAr: "مقبلات باردة",
		items: []seedItem{
			{name: "Houmous Tahina", nameAr: "حمص بالطحين", price: "30"},
			{name: "Warak Enab", nameAr: "ورقة العنب", price: "35"},
			{name: "Mtabal d'aubergines", nameAr: "متبل باذنجان", price: "30"},
		},
	},
	{
		name: "Sandwiches", nameAr: "سندويش",
		items: []seedItem{
			{name: "Sandwich Poulet", nameAr: "سندويش دجاج", price: "35", modifiers: sandwichModifiers},
			{name: "Sandwich Viande Hachée", nameAr: "سندويش كفتة", price: "40", modifiers: sandwichModifiers},
		},
	},
	{
		name: "Grillades", nameAr: "مشاوي",
		items: []seedItem{
			{
				name: "Plat Chiche Taouk", nameAr: "صحن شيش طاووق", price: "65",
				modifiers: []seedModifier{{
					name: "Cuisson", kind: models.ModifierCooking,
					options: []seedOption{{"Normale", "0"}, {"Bien cuit", "0"}},
				}},
			},
		},
	},
	{
		name: "Boissons", nameAr: "مشروبات",
		items: []seedItem{
			{
				name: "Citronnade", nameAr: "ليموناضة", price: "15",
				modifiers: []seedModifier{{
					name: "Taille", kind: models.ModifierSize, required: true,
					options: []seedOption{{"Normale", "0"}, {"Grande", "5"}},
				}},
			},
		},
	},
}

// Seed creates the demo restaurant, its admin account and a small menu. It is
// safe to run on every start: existing rows are left untouched.
func Seed(db *gorm.DB, opts SeedOptions) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(models.Restaurant{Slug: DemoRestaurantSlug}).
			Attrs(models.Restaurant{
				Name:     "ZEN ACHAM",
				City:     "Casablanca",
				Address:  "123 Rue de la Chawarma, Casablanca",
				Phone:    "+212 612 345 678",
				Currency: "DH",
			}).
			FirstOrCreate(&restaurant).Error
		if err != nil {
			return fmt.Errorf("seed restaurant: %w", err)
		}

		if err := seedAdmin(tx, restaurant.ID, opts); err != nil {
			return err
		}

		var categories int64
		if err := tx.Model(&models.Category{}).Where("restaurant_id = ?", restaurant.ID).Count(&categories).Error; err != nil {
			return err
		}
		if categories > 0 {
			return nil
		}
		return seedMenu(tx, restaurant.ID)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithField("restaurant", restaurant.Slug).Info("Demo data ready")
	return &restaurant, nil
}

func seedAdmin(tx *gorm.DB, restaurantID uint, opts SeedOptions) error {
	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	if email == "" || opts.AdminPassword == "" {
		return nil
	}

	var existing models.Admin
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		RestaurantID: restaurantID,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	utils.InfoLogger.WithField("email", admin.Email).Info("Seeded admin account")
	return nil
}

func seedMenu(tx *gorm.DB, restaurantID uint) error {
	for ci, sc := range demoMenu {
		nameAr := sc.nameAr
		category := models.Category{
			RestaurantID: restaurantID,
			Name:         sc.name,
			NameAr:       &nameAr,
			DisplayOrder: ci,
			IsActive:     true,
		}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", sc.name, err)
		}

		for ii, si := range sc.items {
			itemNameAr := si.nameAr
			item := models.Item{
				CategoryID:   category.ID,
				Name:         si.name,
				NameAr:       &itemNameAr,
				Price:        decimal.RequireFromString(si.price),
				IsAvailable:  true,
				DisplayOrder: ii,
			}
			for mi, sm := range si.modifiers {
				modifier := models.Modifier{
					Name:         sm.name,
					Type:         sm.kind,
					IsRequired:   sm.required,
					DisplayOrder: mi,
				}
				for oi, so := range sm.options {
					modifier.Options = append(modifier.Options, models.ModifierOption{
						Name:         so.name,
						Price:        decimal.RequireFromString(so.price),
						IsAvailable:  true,
						DisplayOrder: oi,
					})
				}
				item.Modifiers = append(item.Modifiers, modifier)
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("seed item %s: %w", si.name, err)
			}
		}
	}
	return nil
}
