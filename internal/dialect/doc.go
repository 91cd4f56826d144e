// Package dialect defines the Java language levels as layered validators.
//
// Each level derives from the previous one by adding and removing catalogue
// rules, so rule logic is never duplicated. Built-in validators are
// constructed on first use and shared; a Registry adds project-defined
// dialects on top of them.
package dialect
