// Package services implements the driving ports: scene building, settings,
// the steering worker and journal queries. Services reach files, steering
// sources and storage only through driven ports.
package services
