package store

import (
	"context"

	"restopos-backend/internal/domain"
)

// SeedIfEmpty installs the default inventory, menu and staff when the menu
// collection is empty. Idempotent: a populated store is left untouched.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	if len(s.Menu(ctx)) > 0 {
		return nil
	}

	inventory := []domain.InventoryItem{
		{ID: 1, Name: "Chicken Breast", Category: "Meat", Quantity: 15, Unit: "kg", MinLevel: 10, Supplier: "Fresh Meats Co.", Cost: 180},
		{ID: 2, Name: "Ground Beef", Category: "Meat", Quantity: 12, Unit: "kg", MinLevel: 5, Supplier: "Fresh Meats Co.", Cost: 220},
		{ID: 3, Name: "Rice", Category: "Grains", Quantity: 50, Unit: "kg", MinLevel: 20, Supplier: "Rice Traders Inc.", Cost: 40},
		{ID: 4, Name: "Noodles", Category: "Grains", Quantity: 25, Unit: "kg", MinLevel: 15, Supplier: "Noodle Distributors", Cost: 65},
		{ID: 5, Name: "Cooking Oil", Category: "Spices", Quantity: 8, Unit: "L", MinLevel: 5, Supplier: "Golden Oil Supplier", Cost: 150},
		{ID: 6, Name: "Soy Sauce", Category: "Spices", Quantity: 15, Unit: "bottles", MinLevel: 10, Supplier: "Spice World", Cost: 45},
		{ID: 7, Name: "Flour", Category: "Grains", Quantity: 20, Unit: "kg", MinLevel: 10, Supplier: "Grain Masters", Cost: 35},
		{ID: 8, Name: "Eggs", Category: "Dairy", Quantity: 100, Unit: "pcs", MinLevel: 50, Supplier: "Farm Fresh", Cost: 6},
		{ID: 9, Name: "Vegetables Mix", Category: "Vegetables", Quantity: 12, Unit: "kg", MinLevel: 8, Supplier: "Veggie Market", Cost: 55},
		{ID: 10, Name: "Tea Leaves", Category: "Beverages", Quantity: 5, Unit: "kg", MinLevel: 3, Supplier: "Tea Imports", Cost: 450},
		{ID: 11, Name: "Lemons", Category: "Vegetables", Quantity: 80, Unit: "pcs", MinLevel: 40, Supplier: "Veggie Market", Cost: 3},
	}

	menu := []domain.MenuItem{
		{ID: 1, Name: "Crispy Fried Chicken", Category: "Chicken", Price: 200, Available: true, PreparationTime: 15, Cost: 80,
			Ingredients: []domain.Ingredient{{Name: "Chicken Breast", Quantity: 0.2}, {Name: "Flour", Quantity: 0.1}, {Name: "Cooking Oil", Quantity: 0.05}}},
		{ID: 2, Name: "Chicken Fried Rice", Category: "Fried Rice", Price: 150, Available: true, PreparationTime: 10, Cost: 55,
			Ingredients: []domain.Ingredient{{Name: "Rice", Quantity: 0.3}, {Name: "Chicken Breast", Quantity: 0.1}, {Name: "Eggs", Quantity: 1}, {Name: "Vegetables Mix", Quantity: 0.1}}},
		{ID: 3, Name: "Pancit Canton", Category: "Fried Noodles", Price: 130, Available: true, PreparationTime: 12, Cost: 50,
			Ingredients: []domain.Ingredient{{Name: "Noodles", Quantity: 0.25}, {Name: "Vegetables Mix", Quantity: 0.15}, {Name: "Soy Sauce", Quantity: 0.05}}},
		{ID: 4, Name: "Spring Rolls (5pcs)", Category: "Snacks", Price: 100, Available: true, PreparationTime: 8, Cost: 35,
			Ingredients: []domain.Ingredient{{Name: "Vegetables Mix", Quantity: 0.1}, {Name: "Ground Beef", Quantity: 0.08}, {Name: "Cooking Oil", Quantity: 0.03}}},
		{ID: 5, Name: "Lemon Iced Tea", Category: "Drinks", Price: 60, Available: true, PreparationTime: 3, Cost: 15,
			Ingredients: []domain.Ingredient{{Name: "Tea Leaves", Quantity: 0.01}, {Name: "Lemons", Quantity: 1}}},
		{ID: 6, Name: "Garlic Fried Rice", Category: "Fried Rice", Price: 70, Available: true, PreparationTime: 8, Cost: 30,
			Ingredients: []domain.Ingredient{{Name: "Rice", Quantity: 0.25}, {Name: "Cooking Oil", Quantity: 0.03}}},
		{ID: 7, Name: "Mango Juice", Category: "Drinks", Price: 65, Available: true, PreparationTime: 3, Cost: 20, Ingredients: []domain.Ingredient{}},
	}

	staff := []domain.StaffMember{
		{ID: 1, Name: "Admin", Role: "Manager", Status: domain.StaffActive, HourlyRate: 120},
		{ID: 2, Name: "Priya", Role: "Cashier", Status: domain.StaffActive, HourlyRate: 85},
		{ID: 3, Name: "Kevin", Role: "Chef", Status: domain.StaffActive, HourlyRate: 100},
	}

	if err := s.SaveInventory(ctx, inventory); err != nil {
		return err
	}
	if err := s.SaveMenu(ctx, menu); err != nil {
		return err
	}
	if err := s.SaveStaff(ctx, staff); err != nil {
		return err
	}
	s.log.Info("seeded default data", "inventory", len(inventory), "menu", len(menu), "staff", len(staff))
	return nil
}
