package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// AgeStats is the output of the active-users $group stage.
type AgeStats struct {
	AverageAge float64 `json:"averageAge" bson:"averageAge"`
	TotalUsers int     `json:"totalUsers" bson:"totalUsers"`
}

type DepartmentStats struct {
	Department string   `json:"department" bson:"_id"`
	Count      int      `json:"count" bson:"count"`
	AvgAge     float64  `json:"avgAge" bson:"avgAge"`
	Employees  []string `json:"employees" bson:"employees"`
}

// TopUser is the projection produced by the top-active pipeline.
type TopUser struct {
	Name   string   `json:"name" bson:"name"`
	Age    int      `json:"age" bson:"age"`
	Skills []string `json:"skills" bson:"skills"`
}

type IndexInfo struct {
	Name               string `json:"name" bson:"name"`
	Key                bson.D `json:"key" bson:"key"`
	Unique             bool   `json:"unique,omitempty" bson:"unique,omitempty"`
	Sparse             bool   `json:"sparse,omitempty" bson:"sparse,omitempty"`
	ExpireAfterSeconds *int32 `json:"expireAfterSeconds,omitempty" bson:"expireAfterSeconds,omitempty"`
}

type IndexStat struct {
	Name     string        `json:"name" bson:"name"`
	Accesses IndexAccesses `json:"accesses" bson:"accesses"`
}

type IndexAccesses struct {
	Ops   int64     `json:"ops" bson:"ops"`
	Since time.Time `json:"since" bson:"since"`
}

// WriteResult summarises a single update, replace or delete call.
type WriteResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
	Deleted  int64 `json:"deleted,omitempty"`
}

type BulkResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
	Upserted int64 `json:"upserted"`
}

// ProfilingStatus mirrors the reply of the profile command.
type ProfilingStatus struct {
	Level  int `json:"level" bson:"was"`
	SlowMS int `json:"slowms" bson:"slowms"`
}

type DatabaseStats struct {
	DB          string  `json:"db" bson:"db"`
	Collections int64   `json:"collections" bson:"collections"`
	Objects     int64   `json:"objects" bson:"objects"`
	DataSize    float64 `json:"dataSize" bson:"dataSize"`
	StorageSize float64 `json:"storageSize" bson:"storageSize"`
	Indexes     int64   `json:"indexes" bson:"indexes"`
	IndexSize   float64 `json:"indexSize" bson:"indexSize"`
}

type CollectionStats struct {
	Namespace      string             `json:"ns" bson:"ns"`
	Count          int64              `json:"count" bson:"count"`
	Size           float64            `json:"size" bson:"size"`
	StorageSize    float64            `json:"storageSize" bson:"storageSize"`
	TotalIndexSize float64            `json:"totalIndexSize" bson:"totalIndexSize"`
	IndexSizes     map[string]float64 `json:"indexSizes" bson:"indexSizes"`
	Raw            bson.M             `json:"-" bson:"-"`
}

type ValidationResult struct {
	Namespace string   `json:"ns" bson:"ns"`
	Valid     bool     `json:"valid" bson:"valid"`
	Records   int64    `json:"nrecords" bson:"nrecords"`
	Errors    []string `json:"errors" bson:"errors"`
	Warnings  []string `json:"warnings" bson:"warnings"`
}

// ServerStatus keeps the two sub-documents the playground reports on.
type ServerStatus struct {
	Host       string  `json:"host" bson:"host"`
	Version    string  `json:"version" bson:"version"`
	Uptime     float64 `json:"uptime" bson:"uptime"`
	Mem        bson.M  `json:"mem" bson:"mem"`
	Opcounters bson.M  `json:"opcounters" bson:"opcounters"`
}

type RoleRef struct {
	Role string `json:"role" bson:"role" validate:"required"`
	DB   string `json:"db" bson:"db" validate:"required"`
}

type DatabaseUser struct {
	User  string    `json:"user" bson:"user"`
	DB    string    `json:"db" bson:"db"`
	Roles []RoleRef `json:"roles" bson:"roles"`
}
