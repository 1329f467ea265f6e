package upstream

import (
	"encoding/json"

	"corralon_backend/internal/catalog/transport"
)

// Sample returns the built-in dataset for an operation. Used when mock mode
// is enabled and as the fallback when the upstream service is unreachable.
// Returned snapshots carry the given source marker and are safe to mutate
// since slices are rebuilt on every call.
func Sample(op Operation, source string) transport.Snapshot {
	var snapshot transport.Snapshot
	switch op {
	case OpClientsSites:
		snapshot = sampleClientsSites()
	case OpSocieties:
		snapshot = sampleSocieties()
	case OpArticles:
		snapshot = sampleArticles()
	default:
		return transport.Snapshot{Source: source}
	}
	snapshot.Source = source
	return snapshot
}

func sampleSocieties() transport.Snapshot {
	return transport.Snapshot{
		Resultado: json.RawMessage("1"),
		Sociedades: []transport.Society{
			{
				Nombre: "DLM Construccion SRL",
				Codigo: "15",
				Sucursales: []transport.Branch{
					{Nombre: "DLM", Codigo: "17"},
				},
			},
			{
				Nombre: "HDL Distribuidora SRL",
				Codigo: "16",
				Sucursales: []transport.Branch{
					{Nombre: "HDL Central", Codigo: "18"},
				},
			},
			{
				Nombre: "Materiales y Logistica SRL",
				Codigo: "17",
				Sucursales: []transport.Branch{
					{Nombre: "MyL", Codigo: "20"},
				},
			},
			{
				Nombre: "HDL URBANA S.R.L.",
				Codigo: "22",
				Sucursales: []transport.Branch{
					{Nombre: "HDL URBANA", Codigo: "29"},
				},
			},
		},
	}
}

func sampleClientsSites() transport.Snapshot {
	return transport.Snapshot{
		Resultado: json.RawMessage("1"),
		Clientes: []transport.Client{
			{
				Datos: transport.ClientData{
					Email:       "cliente@ejemplo.com",
					CUIT:        "20316528210",
					Telefono:    "20316528210",
					RazonSocial: "Cliente Ejemplo SA",
				},
				Sociedades: []transport.ClientSociety{
					{Codigo: "16", Nombre: "HDL Distribuidora SRL"},
					{Codigo: "17", Nombre: "Materiales y Logistica SRL"},
				},
				Obras: []transport.Site{
					{
						Codigo: "155",
						Nombre: "Casa Particular 120m2",
						Listas: []transport.PriceList{
							{Nombre: "14462", Codigo: "Lista Obra C12"},
							{Nombre: "13186", Codigo: "Lista Obra C20"},
						},
					},
					{
						Codigo: "135",
						Nombre: "Edificio Residencial",
						Listas: []transport.PriceList{
							{Nombre: "14462", Codigo: "Lista Obra C12"},
						},
					},
				},
			},
		},
	}
}

func sampleArticles() transport.Snapshot {
	return transport.Snapshot{
		Resultado: json.RawMessage("1"),
		Articulos: []transport.Article{
			{
				Codigo:    "10104",
				Nombre:    "PIEDRA PARTIDA (6a20) X M3 CAMION",
				CodigoInt: "230011",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "79794.368"},
					{Codigo: "13186", Nombre: "Lista Obra C20", Precio: "75000.000"},
				},
			},
			{
				Codigo:    "10120",
				Nombre:    "PIEDRA PARTIDA (6a20) X M3",
				CodigoInt: "230010",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "71066.667"},
				},
			},
			{
				Codigo:    "30101",
				Nombre:    "LADRILLO COMUN",
				CodigoInt: "300001",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "192.391"},
				},
			},
			{
				Codigo:    "30104",
				Nombre:    "LADRILLO HUECO 8X18X33",
				CodigoInt: "300004",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "579.870"},
				},
			},
			{
				Codigo:    "50103",
				Nombre:    "CEMENTO AVELLANEDA X 50 KG",
				CodigoInt: "500003",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "8500.000"},
				},
			},
			{
				Codigo:    "50108",
				Nombre:    "CAL MILAGRO X 25 KG",
				CodigoInt: "500008",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "4500.000"},
				},
			},
			{
				Codigo:    "50115",
				Nombre:    "YESO ALPRESS x 35 KG",
				CodigoInt: "500015",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "6200.000"},
				},
			},
			{
				Codigo:    "60001",
				Nombre:    "KLAUKOL IMPERMEABLE POTENCIADO X 30 KG",
				CodigoInt: "600001",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "12500.000"},
				},
			},
			{
				Codigo:    "70001",
				Nombre:    "BLOQUE RETAK BQ 12.5X25X50",
				CodigoInt: "700001",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "850.000"},
				},
			},
			{
				Codigo:    "10118",
				Nombre:    "ARENA X M3 CAMION",
				CodigoInt: "230018",
				Precios: []transport.PriceEntry{
					{Codigo: "14462", Nombre: "Lista Obra C12", Precio: "37696.117"},
				},
			},
		},
	}
}
