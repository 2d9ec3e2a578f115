package catalog

// Default returns the built-in rule table for the ui-kit v2 to v3
// migration. It covers the boolean prop renames, the grid/layout module
// split, and the icon set replacement. Projects with their own migration
// needs supply a catalog file instead.
func Default() *Catalog {
	return &Catalog{
		PropRenames: []PropRename{
			{From: "isOpen", To: "open"},
			{From: "isDisabled", To: "disabled"},
			{From: "isLoading", To: "loading"},
			{From: "isInvalid", To: "invalid"},
			{From: "isChecked", To: "checked"},
			{From: "isActive", To: "active"},
			{From: "isRequired", To: "required"},
			{From: "isReadOnly", To: "readOnly"},
			{From: "isCentered", To: "centered", AppliesTo: []string{"Modal", "Dialog"}},
			{From: "spacing", To: "gap", AppliesTo: []string{"Stack", "HStack", "VStack", "Wrap"}},
			{From: "onChange", To: "onValueChange", AppliesTo: []string{"Select", "Slider", "Tabs"}},
		},
		ImportRemaps: []ImportRemap{
			{FromPath: "ui-kit", ToPath: "ui-kit/grid", Symbols: []string{"Grid", "GridItem", "SimpleGrid"}},
			{FromPath: "ui-kit/toast", ToPath: "ui-kit/toaster"},
		},
		IdentifierRenames: []IdentifierRename{
			{From: "AddIcon", To: "LuPlus", FromPath: "ui-kit/icons", ToPath: "react-icons/lu"},
			{From: "CloseIcon", To: "LuX", FromPath: "ui-kit/icons", ToPath: "react-icons/lu"},
			{From: "ChevronDownIcon", To: "LuChevronDown", FromPath: "ui-kit/icons", ToPath: "react-icons/lu"},
			{From: "SearchIcon", To: "LuSearch", FromPath: "ui-kit/icons", ToPath: "react-icons/lu"},
			{From: "WarningIcon", To: "LuTriangleAlert", FromPath: "ui-kit/icons", ToPath: "react-icons/lu"},
		},
		Exclusions: []Exclusion{
			// Modal keeps the v2 controlled-open API until its own migration.
			{Component: "Modal", Prop: "isOpen"},
			{Component: "Modal", Prop: "isCentered"},
		},
		Patches: []Patch{
			{
				PathSuffix: "components/ui/provider.tsx",
				Find:       `<ThemeProvider theme={theme}>`,
				Replace:    `<ThemeProvider value={system}>`,
			},
		},
	}
}
