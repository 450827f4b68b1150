package messages

// Key identifies a message template in a Catalog.
type Key string

const (
	CommonModuleNameClientTitle       Key = "common-module-name-client.title"
	CommonModuleNameClientDescription Key = "common-module-name-client.description"
	CommonModuleNameClientMessage     Key = "common-module-name-client.message"

	CommonModuleNameClientServerTitle       Key = "common-module-name-client-server.title"
	CommonModuleNameClientServerDescription Key = "common-module-name-client-server.description"
	CommonModuleNameClientServerMessage     Key = "common-module-name-client-server.message"

	CommonModuleNameGlobalTitle       Key = "common-module-name-global.title"
	CommonModuleNameGlobalDescription Key = "common-module-name-global.description"
	CommonModuleNameGlobalMessage     Key = "common-module-name-global.message"

	CommonModuleNameServerCallTitle       Key = "common-module-name-server-call-postfix.title"
	CommonModuleNameServerCallDescription Key = "common-module-name-server-call-postfix.description"
	CommonModuleNameServerCallMessage     Key = "common-module-name-server-call-postfix.message"

	CommonModuleTypeTitle       Key = "common-module-type.title"
	CommonModuleTypeDescription Key = "common-module-type.description"
	CommonModuleTypeMessage     Key = "common-module-type.message"

	ConfigurationDataLockTitle       Key = "configuration-data-lock-mode.title"
	ConfigurationDataLockDescription Key = "configuration-data-lock-mode.description"
	ConfigurationDataLockMessage     Key = "configuration-data-lock-mode.message"

	DbObjectAnyRefTitle       Key = "db-object-anyref-type.title"
	DbObjectAnyRefDescription Key = "db-object-anyref-type.description"
	DbObjectAnyRefMessage     Key = "db-object-anyref-type.message"

	DbObjectRefNonRefTitle       Key = "db-object-ref-non-ref-type.title"
	DbObjectRefNonRefDescription Key = "db-object-ref-non-ref-type.description"
	DbObjectRefNonRefMessage     Key = "db-object-ref-non-ref-type.message"

	ExtensionPrefixTitle       Key = "extension-md-object-prefix.title"
	ExtensionPrefixDescription Key = "extension-md-object-prefix.description"
	ExtensionPrefixMessage     Key = "extension-md-object-prefix.message"

	NameLengthTitle       Key = "md-object-name-length.title"
	NameLengthDescription Key = "md-object-name-length.description"
	NameLengthMessage     Key = "md-object-name-length.message"

	ListPresentationTitle       Key = "md-list-object-presentation.title"
	ListPresentationDescription Key = "md-list-object-presentation.description"
	ListPresentationMessage     Key = "md-list-object-presentation.message"

	OwnerSynonymTitle         Key = "md-owner-attribute-synonym-empty.title"
	OwnerSynonymDescription   Key = "md-owner-attribute-synonym-empty.description"
	OwnerSynonymOwnerMessage  Key = "md-owner-attribute-synonym-empty.owner-message"
	OwnerSynonymParentMessage Key = "md-owner-attribute-synonym-empty.parent-message"

	JobDescriptionTitle       Key = "scheduled-job-description.title"
	JobDescriptionDescription Key = "scheduled-job-description.description"
	JobDescriptionMessage     Key = "scheduled-job-description.message"

	JobPeriodicityTitle       Key = "scheduled-job-periodicity.title"
	JobPeriodicityDescription Key = "scheduled-job-periodicity.description"
	JobPeriodicityMessage     Key = "scheduled-job-periodicity.message"

	UnsafePasswordTitle       Key = "unsafe-password-ib-storage.title"
	UnsafePasswordDescription Key = "unsafe-password-ib-storage.description"
	UnsafePasswordMessage     Key = "unsafe-password-ib-storage.message"

	ResourcePrecisionTitle       Key = "register-resource-precision.title"
	ResourcePrecisionDescription Key = "register-resource-precision.description"
	ResourcePrecisionMessage     Key = "register-resource-precision.message"

	SubsystemSynonymTitle       Key = "subsystem-synonym-too-long.title"
	SubsystemSynonymDescription Key = "subsystem-synonym-too-long.description"
	SubsystemSynonymMessage     Key = "subsystem-synonym-too-long.message"

	OptionNameSuffixList    Key = "option.name-suffix-list"
	OptionCaseSensitive     Key = "option.case-sensitive"
	OptionAnyRefTypes       Key = "option.anyref-types"
	OptionMaxNameLength     Key = "option.max-name-length"
	OptionMinSchedulePeriod Key = "option.minimum-schedule-period"
	OptionPasswordWords     Key = "option.password-words"
	OptionMaxPrecision      Key = "option.max-precision"
	OptionMaxSynonymLength  Key = "option.max-synonym-length"
	OptionExcludeLanguages  Key = "option.exclude-languages"
)

// Keys returns every key a complete catalog must define.
func Keys() []Key {
	return []Key{
		CommonModuleNameClientTitle, CommonModuleNameClientDescription, CommonModuleNameClientMessage,
		CommonModuleNameClientServerTitle, CommonModuleNameClientServerDescription, CommonModuleNameClientServerMessage,
		CommonModuleNameGlobalTitle, CommonModuleNameGlobalDescription, CommonModuleNameGlobalMessage,
		CommonModuleNameServerCallTitle, CommonModuleNameServerCallDescription, CommonModuleNameServerCallMessage,
		CommonModuleTypeTitle, CommonModuleTypeDescription, CommonModuleTypeMessage,
		ConfigurationDataLockTitle, ConfigurationDataLockDescription, ConfigurationDataLockMessage,
		DbObjectAnyRefTitle, DbObjectAnyRefDescription, DbObjectAnyRefMessage,
		DbObjectRefNonRefTitle, DbObjectRefNonRefDescription, DbObjectRefNonRefMessage,
		ExtensionPrefixTitle, ExtensionPrefixDescription, ExtensionPrefixMessage,
		NameLengthTitle, NameLengthDescription, NameLengthMessage,
		ListPresentationTitle, ListPresentationDescription, ListPresentationMessage,
		OwnerSynonymTitle, OwnerSynonymDescription, OwnerSynonymOwnerMessage, OwnerSynonymParentMessage,
		JobDescriptionTitle, JobDescriptionDescription, JobDescriptionMessage,
		JobPeriodicityTitle, JobPeriodicityDescription, JobPeriodicityMessage,
		UnsafePasswordTitle, UnsafePasswordDescription, UnsafePasswordMessage,
		ResourcePrecisionTitle, ResourcePrecisionDescription, ResourcePrecisionMessage,
		SubsystemSynonymTitle, SubsystemSynonymDescription, SubsystemSynonymMessage,
		OptionNameSuffixList, OptionCaseSensitive, OptionAnyRefTypes, OptionMaxNameLength,
		OptionMinSchedulePeriod, OptionPasswordWords, OptionMaxPrecision, OptionMaxSynonymLength,
		OptionExcludeLanguages,
	}
}
