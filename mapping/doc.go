// Package mapping loads mapper configuration from YAML files.
//
// A mapping file declares profiles and type maps by name. Names are turned
// into Go types, formatters and resolvers through a Registry, then Apply
// writes everything onto a mapper.Configuration.
//
// # Schema Overview
//
//	version: "1"
//	profiles:
//	  - name: reports
//	    map_null_source_values_as_null: false
//	    locale: de-DE
//	mappings:
//	  - source: store.Order
//	    target: warehouse.Shipment
//	    profile: reports
//	    # source member: destination member
//	    121:
//	      ID: OrderNumber
//	    fields:
//	      - target: Destination
//	        source: Customer.Address.Country
//	      - target: [Total, Amount]           # one source, many targets
//	        source: TotalCents
//	        formatters: cents
//	      - target: Notes
//	        null_substitute: none
//	      - target: Priority
//	        use_destination_value: true
//	      - target: Reference
//	        resolver: reference
//	        order: 10
//	    ignore:
//	      - PackedBy
//	    include:
//	      - source: store.RushOrder
//	        target: warehouse.RushShipment
//
// # Priority Order
//
// Entries are applied in this order, so later ones win:
//  1. automatic member matching done when the type map is created
//  2. "121" shorthand
//  3. "fields"
//  4. "ignore"
//
// # Type names
//
// Types are looked up by "pkg.Name" (the last import path element), by the
// full "import/path.Name" or by the bare "Name" when it is unambiguous.
package mapping
