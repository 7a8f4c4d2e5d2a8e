package models

import "time"

// SeedVehicles returns the sample inventory written on first run. CreatedAt
// values are stamped relative to now so the newest-first ordering in the
// showroom matches a freshly stocked store.
func SeedVehicles() []Vehicle {
	now := time.Now().UnixMilli()
	return []Vehicle{
		{
			ID:           "1",
			Make:         "Porsche",
			Model:        "911 Carrera S",
			Year:         2023,
			Price:        1450000,
			Mileage:      4500,
			FuelType:     "Gasolina",
			Transmission: "PDK",
			Color:        "Cinza Agate",
			Description:  "A lenda automotiva em sua melhor forma. Porsche 911 Carrera S com interior em couro Bordeaux, pacote Sport Chrono e sistema de escape esportivo. Estado de zero km.",
			ImageURL:     "https://picsum.photos/seed/porsche911/800/600",
			Gallery:      []string{"https://picsum.photos/seed/porsche_int/800/600", "https://picsum.photos/seed/porsche_rear/800/600"},
			Status:       VehicleAvailable,
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Make:         "Land Rover",
			Model:        "Range Rover Sport Dynamic",
			Year:         2024,
			Price:        980000,
			Mileage:      1200,
			FuelType:     "Híbrido Diesel",
			Transmission: "Automático",
			Color:        "Preto Santorini",
			Description:  "Luxo e robustez. Range Rover Sport com teto panorâmico, rodas aro 22 e sistema de som Meridian Surround. O SUV definitivo para cidade e estrada.",
			ImageURL:     "https://picsum.photos/seed/rangerover/800/600",
			Gallery:      []string{},
			Status:       VehicleAvailable,
			CreatedAt:    now - 100000,
		},
		{
			ID:           "3",
			Make:         "Mercedes-Benz",
			Model:        "C300 AMG Line",
			Year:         2022,
			Price:        389900,
			Mileage:      18000,
			FuelType:     "Gasolina",
			Transmission: "9G-Tronic",
			Color:        "Branco Polar",
			Description:  "Elegância com toque esportivo. C300 com kit AMG completo, painel digital widescreen e assistentes de condução autônoma.",
			ImageURL:     "https://picsum.photos/seed/mercedes/800/600",
			Gallery:      []string{},
			Status:       VehicleReserved,
			CreatedAt:    now - 200000,
		},
		{
			ID:           "4",
			Make:         "BMW",
			Model:        "X6 M Competition",
			Year:         2021,
			Price:        850000,
			Mileage:      22000,
			FuelType:     "Gasolina",
			Transmission: "Automático",
			Color:        "Azul Marina Bay",
			Description:  "Performance bruta. X6 M Competition entregando 625cv. Veículo revisado na concessionária e com garantia estendida.",
			ImageURL:     "https://picsum.photos/seed/bmwx6/800/600",
			Gallery:      []string{},
			Status:       VehicleSold,
			CreatedAt:    now - 500000,
		},
	}
}
