package org

import "time"

type Employee struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId,omitempty"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	NationalID   string     `json:"nationalId,omitempty"`
	DepartmentID string     `json:"departmentId,omitempty"`
	PositionID   string     `json:"positionId,omitempty"`
	ManagerID    string     `json:"managerId,omitempty"`
	IsActive     bool       `json:"isActive"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) HasManager() bool {
	return e.ManagerID != ""
}

type EmployeeFilter struct {
	DepartmentID string
	ManagerID    string
	ActiveOnly   bool
}

type Department struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ParentID       string    `json:"parentId,omitempty"`
	HeadEmployeeID string    `json:"headEmployeeId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Position struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	DepartmentID string    `json:"departmentId,omitempty"`
	Level        int       `json:"level"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ChartNode is one employee in the rendered reporting tree.
type ChartNode struct {
	Employee Employee    `json:"employee"`
	Reports  []ChartNode `json:"reports"`
}
