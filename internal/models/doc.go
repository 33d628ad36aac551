// Package models defines the core domain models for the household ledger.
//
// # Models
//
//   - User: registered account; users become group members
//   - Group / GroupMember: a household and the people sharing its costs
//   - Expense: something one member paid for on behalf of some participants,
//     optionally spread over several months as installments
//   - ExpenseOccurrence: the part of an expense due in one month
//   - OccurrenceDetail: an occurrence joined with payer and participants, the
//     input of the balance calculation
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers
//  2. Monetary amounts are float64 rounded to two decimals when produced
//  3. Months are stored as their first day (YYYY-MM-01)
package models
