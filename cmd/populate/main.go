package main

import (
	"flag"
	"os"

	"github.com/pterm/pterm"

	"provchain/ledger"
	"provchain/payload"
	"provchain/testing"
)

// populate rebuilds the example provenance ledger: a luxury-bag supply chain
// and a five-layer BLDC motor supply chain, every block signed with a
// one-off discarded keypair.

var chain *ledger.Ledger

func addStage(stage *payload.Stage) *ledger.Block {
	block, err := testing.AppendStage(chain, stage)
	if err != nil {
		pterm.Error.Printfln("failed to append %q: %v", stage.Name, err)
		os.Exit(1)
	}
	pterm.Success.Printfln("block %d: %s (%s, %s)", block.Index, stage.Name, stage.City, stage.Country)
	return block
}

func main() {
	path := flag.String("file", "populated.blockchain", "ledger file to write")
	flag.Parse()

	if _, err := os.Stat(*path); err == nil {
		os.Remove(*path)
	}

	var err error
	chain, err = ledger.Load(*path, true)
	if err != nil {
		pterm.Error.Printfln("failed to bootstrap ledger: %v", err)
		os.Exit(1)
	}

	link := testing.Link
	stage := testing.NewStage

	// Luxury bag supply chain
	hide := addStage(stage("Crocodile Hide",
		"Vietnam", "Ho Chi Minh", 30, "pieces",
		"Croco Farming Ltd", nil, "Known for excessive animal cruelty"))

	str := addStage(stage("String Rolls",
		"China", "Beijing", 30, "kg",
		"Rolling Dragon Ltd", nil, "No known issues with the company"))

	leather := addStage(stage("Leather Sheets Assembly",
		"China", "Beijing", 60, "pieces",
		"Leather Weather Factory", []payload.ComponentRef{
			link(0.9, "Crocodile Hide", 2300, hide.Index),
			link(0.1, "String Rolls", 600, str.Index),
		}, "No known issues with the company"))

	buttons := addStage(stage("Metal & Plastic Buttons",
		"Germany", "Hamburg", 100, "pieces",
		"ButtonTech GmbH", nil, "No known issues"))

	addStage(stage("Luxury Bag Assembly",
		"France", "Paris", 50, "bags",
		"Haute Bags Ltd", []payload.ComponentRef{
			link(0.7, "Leather Sheets Assembly", 7890, leather.Index),
			link(0.2, "String Rolls", 8000, str.Index),
			link(0.1, "Buttons/Hardware", 1230, buttons.Index),
		}, "No known issues with the assembly company"))

	// BLDC motor supply chain, layer 1: raw materials
	addStage(stage("Copper Ore",
		"Chile", "Santiago", 500, "tons",
		"Andes Mining Corp", nil, "Environmental concerns with mining runoff"))

	addStage(stage("Iron Ore",
		"Australia", "Perth", 1000, "tons",
		"DownUnder Mining Ltd", nil, "No known issues"))

	addStage(stage("Petrochemical Plastic Pellets",
		"Saudi Arabia", "Riyadh", 200, "tons",
		"PetroPlastics Co.", nil, "Linked to oil-related carbon emissions"))

	addStage(stage("Silicon Wafers",
		"Taiwan", "Hsinchu", 300, "kg",
		"Taiwan Silicon Works", nil, "No known issues"))

	copper := addStage(stage("Copper Ore",
		"Chile", "Antofagasta", 2000, "tons",
		"Andes Mining Corp", nil, "Water-intensive mining operations"))

	neodymium := addStage(stage("Neodymium Ore",
		"China", "Baotou", 500, "tons",
		"Baotou Rare Earths Ltd", nil, "Toxic waste issues"))

	graphite := addStage(stage("Natural Graphite",
		"Mozambique", "Montepuez", 800, "tons",
		"MozGraph Co.", nil, "Local community disputes"))

	silicon := addStage(stage("High-Purity Silicon",
		"USA", "San Jose", 600, "tons",
		"SilicaPure Inc", nil, "Energy-intensive production"))

	plastic := addStage(stage("Polymer Resin Pellets",
		"Saudi Arabia", "Jubail", 1000, "tons",
		"PetroPlastics Ltd", nil, "Carbon emissions linked to oil refining"))

	steel := addStage(stage("Alloy Steel",
		"India", "Bhubaneswar", 3000, "tons",
		"Bharat Alloys Ltd", nil, "No known issues"))

	// Layer 2: refined / processed materials
	copperWire := addStage(stage("Ultra-Fine Copper Wire",
		"Vietnam", "Hai Phong", 700, "tons",
		"VietCopper Ltd", []payload.ComponentRef{
			link(1.0, "Copper Ore", 19485, copper.Index),
		}, "No known issues"))

	neodymiumIngots := addStage(stage("Neodymium Ingots",
		"China", "Shenzhen", 400, "tons",
		"NeoMaterials Ltd", []payload.ComponentRef{
			link(1.0, "Neodymium Ore", 2049, neodymium.Index),
		}, "Environmental risk from rare earth processing"))

	epoxy := addStage(stage("Epoxy Resin",
		"Germany", "Frankfurt", 500, "tons",
		"ChemResin GmbH", []payload.ComponentRef{
			link(1.0, "Polymer Resin Pellets", 4309, plastic.Index),
		}, "No known issues"))

	semiconductor := addStage(stage("Power Semiconductors",
		"Taiwan", "Hsinchu", 300, "kg",
		"Taiwan SemiWorks", []payload.ComponentRef{
			link(1.0, "High-Purity Silicon", 10484, silicon.Index),
		}, "No known issues"))

	bearingSteel := addStage(stage("Hardened Bearing Steel",
		"Sweden", "Lulea", 1200, "tons",
		"NordicSteel AB", []payload.ComponentRef{
			link(1.0, "Alloy Steel", 6761, steel.Index),
		}, "No known issues"))

	// Layer 3: motor parts
	statorWindings := addStage(stage("Stator Windings (precision-wound)",
		"Japan", "Nagoya", 1000, "sets",
		"WindTech Co.", []payload.ComponentRef{
			link(0.8, "Ultra-Fine Copper Wire", 3347, copperWire.Index),
			link(0.2, "Epoxy Resin", 9255, epoxy.Index),
		}, "High-precision winding process (automated tension control)"))

	rotorMagnets := addStage(stage("Rotor Permanent Magnet Sets",
		"China", "Guangzhou", 800, "sets",
		"MagForce Ltd", []payload.ComponentRef{
			link(1.0, "Neodymium Ingots", 98, neodymiumIngots.Index),
		}, "Potential labor issues during ore processing"))

	bearings := addStage(stage("Ceramic Ball Bearings (precision)",
		"Italy", "Turin", 1500, "units",
		"Ceramotion S.p.A.", []payload.ComponentRef{
			link(0.7, "Hardened Bearing Steel", 7198, bearingSteel.Index),
			link(0.3, "Natural Graphite", 7198, graphite.Index),
		}, "Tight roundness and surface-finish tolerances"))

	pcb := addStage(stage("Motor Driver PCB (bare board + SMD assembly)",
		"Vietnam", "Da Nang", 1200, "boards",
		"PCBWorks Ltd", []payload.ComponentRef{
			link(1.0, "Power Semiconductors", 1644, semiconductor.Index),
		}, "Solder reflow and conformal-coating ready"))

	housing := addStage(stage("Aluminum Motor Housing (CNC & finish)",
		"Mexico", "Guadalajara", 600, "units",
		"AluCast SA", []payload.ComponentRef{
			link(1.0, "Alloy Steel", 15351, steel.Index),
		}, "Precision CNC tolerances for housings"))

	// Layer 4: sub-assemblies
	rotor := addStage(stage("BLDC Rotor Assembly (magnets fitted & balance-checked)",
		"South Korea", "Incheon", 400, "units",
		"K-Rotor Co.", []payload.ComponentRef{
			link(0.7, "Rotor Permanent Magnets", 2046, rotorMagnets.Index),
			link(0.3, "Ceramic Ball Bearings", 8994, bearings.Index),
		}, "Dynamic balancing for high RPMs"))

	stator := addStage(stage("BLDC Stator Assembly",
		"Germany", "Stuttgart", 500, "units",
		"EuroStator GmbH", []payload.ComponentRef{
			link(1.0, "Stator Windings", 9345, statorWindings.Index),
		}, "Varnish cure & slot insulation applied"))

	controller := addStage(stage("Electronic Speed Controller (ESC)",
		"Taiwan", "Taipei", 700, "units",
		"ESC Dynamics Ltd", []payload.ComponentRef{
			link(0.8, "Motor Driver PCB", 1706, pcb.Index),
			link(0.2, "Epoxy Resin", 1706, epoxy.Index),
		}, "Firmware flash & thermal profiling performed"))

	sensors := addStage(stage("Hall Effect / Rotor Position Sensors (SMD + test)",
		"Singapore", "Singapore", 1000, "units",
		"Sensorix Pte Ltd", []payload.ComponentRef{
			link(1.0, "Power Semiconductors", 3196, semiconductor.Index),
		}, "High-reliability sensor calibration"))

	// Layer 5: final assembly
	motor := addStage(stage("Brushless DC Motor Assembly",
		"USA", "Detroit", 300, "motors",
		"MotorWorks Inc", []payload.ComponentRef{
			link(0.25, "BLDC Rotor Assembly", 10645, rotor.Index),
			link(0.25, "BLDC Stator Assembly", 6762, stator.Index),
			link(0.20, "Electronic Speed Controller (ESC)", 12109, controller.Index),
			link(0.15, "Hall Effect Sensors", 15115, sensors.Index),
			link(0.15, "Aluminum Motor Housing", 600, housing.Index),
		}, "Final BLDC motor for drones, e-bikes, robotics; final test & QC in Detroit"))

	if err := chain.Save(*path); err != nil {
		pterm.Error.Printfln("failed to save ledger: %v", err)
		os.Exit(1)
	}

	pterm.Info.Printfln("saved %d blocks to %s (final assembly at block %d)",
		chain.Length(), *path, motor.Index)
}
